package models

type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// DefaultSettings are merged under stored values on every read.
var DefaultSettings = map[string]string{
	"studio_name":              "Rachel",
	"studio_subtitle":          "השכרת שמלות יוקרה",
	"whatsapp_return_template": "שלום {customer_name},\nתזכורת: מחר ({date}) מתוכננת החזרת השמלה \"{dress_name}\".\nנשמח לראותך!\n\nרחל - השכרת שמלות",
	"whatsapp_fitting_template": "שלום {customer_name},\nתזכורת: מחר ({date}){time} יש לך מדידה בסטודיו.\nמחכים לך!\n\nרחל - השכרת שמלות",
	"whatsapp_pickup_template": "שלום {customer_name},\nתזכורת: מחר ({date}) מתוכנן איסוף השמלה \"{dress_name}\".\nנשמח לראותך!\n\nרחל - השכרת שמלות",
	"whatsapp_thankyou_template": "שלום {customer_name},\nתודה שבחרת ברחל!\nנשמח לראותך שוב.\n\nרחל - השכרת שמלות",
}
