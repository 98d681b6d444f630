package prefs

type Preferences struct {
	GasPrice     string `json:"gasPrice"`
	Mpg          string `json:"mpg"`
	Theme        string `json:"theme"`
	PrimaryColor string `json:"primaryColor"`
}
