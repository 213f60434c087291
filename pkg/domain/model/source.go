package model

// ProductVersion is one entry of the data-supported-versions JSON list
// published on the documentation index page
type ProductVersion struct {
	Name string `json:"name"`
}
