package dto

type ListInput struct {
	Branch string
}

type LabOutput struct {
	ID         string
	Title      string
	Branch     string
	Difficulty int
}

type ToolOutput struct {
	ID   string
	Name string
}

type ParameterOutput struct {
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

type LabDetailOutput struct {
	ID            string
	Title         string
	Branch        string
	Difficulty    int
	Summary       string
	Prerequisites []string
	Tools         []ToolOutput
	Parameters    []ParameterOutput
}

// HasTool reports whether the lab offers the tool id.
func (l LabDetailOutput) HasTool(id string) bool {
	for _, tool := range l.Tools {
		if tool.ID == id {
			return true
		}
	}
	return false
}
