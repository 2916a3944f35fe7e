package domain

type Airport struct {
	Code        string
	CityCode    string
	Name        string
	City        string
	CountryCode string
	Timezone    string
}
