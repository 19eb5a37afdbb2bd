package model

type ActivateInput struct {
	Key string `json:"key"`
}

type GenerateInput struct {
	ClientID     string `json:"clientId"`
	DurationDays int    `json:"durationDays"`
}

type SettingsInput struct {
	CompanyName string `json:"companyName"`
	Supervisor  string `json:"supervisor"`
	IFU         string `json:"ifu"`
}
