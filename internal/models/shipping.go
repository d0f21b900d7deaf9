package models

import "strings"

// Shipping costs in EGP. Cairo and Giza ship cheaper than the rest of the
// country; the default applies before a governorate is selected.
const (
	ShippingDefaultEGP   = 70
	ShippingCairoGizaEGP = 70
	ShippingOtherEGP     = 80
)

var cheapShippingIDs = map[string]bool{
	"cairo": true,
	"giza":  true,
}

// ShippingByGovernorate returns the shipping cost in EGP for a governorate
// id (e.g. "cairo", "alexandria").
func ShippingByGovernorate(id string) float64 {
	if id == "" {
		return ShippingDefaultEGP
	}
	if cheapShippingIDs[strings.ToLower(id)] {
		return ShippingCairoGizaEGP
	}
	return ShippingOtherEGP
}

// Governorate is one Egyptian governorate with both display names.
type Governorate struct {
	ID string `json:"id"`
	AR string `json:"ar"`
	EN string `json:"en"`
}

// Governorates lists the Egyptian governorates offered at checkout.
var Governorates = []Governorate{
	{ID: "cairo", AR: "القاهرة", EN: "Cairo"},
	{ID: "giza", AR: "الجيزة", EN: "Giza"},
	{ID: "alexandria", AR: "الإسكندرية", EN: "Alexandria"},
	{ID: "ismailia", AR: "الإسماعيلية", EN: "Ismailia"},
	{ID: "aswan", AR: "أسوان", EN: "Aswan"},
	{ID: "asyut", AR: "أسيوط", EN: "Asyut"},
	{ID: "suez", AR: "السويس", EN: "Suez"},
	{ID: "monufia", AR: "المنوفية", EN: "Monufia"},
	{ID: "dakahlia", AR: "الدقهلية", EN: "Dakahlia"},
	{ID: "damietta", AR: "دمياط", EN: "Damietta"},
	{ID: "sohag", AR: "سوهاج", EN: "Sohag"},
	{ID: "sharqia", AR: "الشرقية", EN: "Sharqia"},
	{ID: "matrouh", AR: "مطروح", EN: "Matrouh"},
	{ID: "minya", AR: "المنيا", EN: "Minya"},
	{ID: "newvalley", AR: "الوادي الجديد", EN: "New Valley"},
	{ID: "southsinai", AR: "جنوب سيناء", EN: "South Sinai"},
	{ID: "qena", AR: "قنا", EN: "Qena"},
	{ID: "luxor", AR: "الأقصر", EN: "Luxor"},
	{ID: "redsea", AR: "البحر الأحمر", EN: "Red Sea"},
	{ID: "beheira", AR: "البحيرة", EN: "Beheira"},
	{ID: "benisuef", AR: "بني سويف", EN: "Beni Suef"},
	{ID: "portsaid", AR: "بور سعيد", EN: "Port Said"},
	{ID: "gharbia", AR: "الغربية", EN: "Gharbia"},
	{ID: "fayoum", AR: "الفيوم", EN: "Fayoum"},
	{ID: "qalyubia", AR: "القليوبية", EN: "Qalyubia"},
	{ID: "kafrelsheikh", AR: "كفر الشيخ", EN: "Kafr El Sheikh"},
	{ID: "northsinai", AR: "شمال سيناء", EN: "North Sinai"},
}
