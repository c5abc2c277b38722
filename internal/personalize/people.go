package personalize

// Person is one entry in the static reviewer dataset backing the demo cards.
type Person struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Image   string `json:"image"`
}

// ccToCountryName maps country codes to the country names used in the people
// dataset. Unknown codes resolve to Pakistan.
var ccToCountryName = map[string]string{
	"US": "United States",
	"CA": "Canada",
	"MX": "Mexico",
	"FR": "France",
	"DE": "Germany",
	"NL": "Netherlands",
	"GB": "United Kingdom",
	"IN": "India",
	"AU": "Australia",
	"NZ": "New Zealand",
	"PK": "Pakistan",
	"AE": "United Arab Emirates",
	"SA": "Saudi Arabia",
}

// CountryName resolves a country code to its dataset country name.
func CountryName(cc string) string {
	if name, ok := ccToCountryName[cc]; ok {
		return name
	}
	return "Pakistan"
}

// people is the static reviewer dataset. Images point at a public portrait
// set so the demo cards render without any upload flow.
var people = []Person{
	{Name: "Ayesha Khan", Country: "Pakistan", Image: "https://randomuser.me/api/portraits/women/44.jpg"},
	{Name: "Bilal Ahmed", Country: "Pakistan", Image: "https://randomuser.me/api/portraits/men/32.jpg"},
	{Name: "Fatima Raza", Country: "Pakistan", Image: "https://randomuser.me/api/portraits/women/68.jpg"},
	{Name: "Hamza Tariq", Country: "Pakistan", Image: "https://randomuser.me/api/portraits/men/71.jpg"},
	{Name: "Emily Carter", Country: "United States", Image: "https://randomuser.me/api/portraits/women/12.jpg"},
	{Name: "James Miller", Country: "United States", Image: "https://randomuser.me/api/portraits/men/18.jpg"},
	{Name: "Sophia Nguyen", Country: "United States", Image: "https://randomuser.me/api/portraits/women/25.jpg"},
	{Name: "Daniel Brooks", Country: "United States", Image: "https://randomuser.me/api/portraits/men/41.jpg"},
	{Name: "Olivia Thompson", Country: "Canada", Image: "https://randomuser.me/api/portraits/women/33.jpg"},
	{Name: "Liam Fraser", Country: "Canada", Image: "https://randomuser.me/api/portraits/men/53.jpg"},
	{Name: "Valeria Gomez", Country: "Mexico", Image: "https://randomuser.me/api/portraits/women/57.jpg"},
	{Name: "Diego Hernandez", Country: "Mexico", Image: "https://randomuser.me/api/portraits/men/62.jpg"},
	{Name: "Camille Laurent", Country: "France", Image: "https://randomuser.me/api/portraits/women/15.jpg"},
	{Name: "Antoine Moreau", Country: "France", Image: "https://randomuser.me/api/portraits/men/27.jpg"},
	{Name: "Lena Fischer", Country: "Germany", Image: "https://randomuser.me/api/portraits/women/21.jpg"},
	{Name: "Jonas Weber", Country: "Germany", Image: "https://randomuser.me/api/portraits/men/36.jpg"},
	{Name: "Sanne de Vries", Country: "Netherlands", Image: "https://randomuser.me/api/portraits/women/48.jpg"},
	{Name: "Daan Bakker", Country: "Netherlands", Image: "https://randomuser.me/api/portraits/men/59.jpg"},
	{Name: "Charlotte Hayes", Country: "United Kingdom", Image: "https://randomuser.me/api/portraits/women/29.jpg"},
	{Name: "Oliver Bennett", Country: "United Kingdom", Image: "https://randomuser.me/api/portraits/men/45.jpg"},
	{Name: "Priya Sharma", Country: "India", Image: "https://randomuser.me/api/portraits/women/65.jpg"},
	{Name: "Arjun Mehta", Country: "India", Image: "https://randomuser.me/api/portraits/men/74.jpg"},
	{Name: "Isla Robinson", Country: "Australia", Image: "https://randomuser.me/api/portraits/women/37.jpg"},
	{Name: "Jack Sullivan", Country: "Australia", Image: "https://randomuser.me/api/portraits/men/23.jpg"},
	{Name: "Ruby Walker", Country: "New Zealand", Image: "https://randomuser.me/api/portraits/women/52.jpg"},
	{Name: "Noah Mitchell", Country: "New Zealand", Image: "https://randomuser.me/api/portraits/men/66.jpg"},
	{Name: "Mariam Al Suwaidi", Country: "United Arab Emirates", Image: "https://randomuser.me/api/portraits/women/71.jpg"},
	{Name: "Omar Al Mansoori", Country: "United Arab Emirates", Image: "https://randomuser.me/api/portraits/men/77.jpg"},
	{Name: "Noura Al Qahtani", Country: "Saudi Arabia", Image: "https://randomuser.me/api/portraits/women/81.jpg"},
	{Name: "Khalid Al Harbi", Country: "Saudi Arabia", Image: "https://randomuser.me/api/portraits/men/83.jpg"},
}
