package doctree

// DemoProject returns the starter project shown to new users
func DemoProject() *Project {
	return &Project{
		ProjectID: "demo_project",
		Sections: []*Section{
			{
				SectionID: StringPtr("sec-1"),
				Title:     "Getting Started",
				Slug:      "getting-started",
				Position:  1,
				Docs: []*Document{
					{
						DocumentationID: StringPtr("doc-1"),
						Title:           "Introduction",
						Slug:            StringPtr("introduction"),
						Position:        1,
						Content: []ContentBlock{
							NewTextBlock("# Welcome\nThis is the introduction."),
							NewCodeGroupBlock(
								CodeEntry{Language: "js", Code: `console.log("Hello JS")`},
								CodeEntry{Language: "python", Code: `print("Hello Python")`},
							),
							NewTextBlock("More explanation below the code."),
						},
						Children: []*Document{},
					},
				},
			},
		},
	}
}
