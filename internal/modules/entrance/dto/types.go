package dto

type ConfigOutput struct {
	LabID          string
	Mode           string
	Difficulty     int
	Tools          []string
	SkipTutorial   bool
	Sustainability bool
}

type EnterInput struct {
	LabID          string
	Mode           string
	Difficulty     int
	Tools          []string
	SkipTutorial   bool
	Sustainability bool
}
