package report

// searchParams are the paging/matching options shared by every find-style
// operation on the metadata service.
var searchParams = []string{"page_size", "start_from", "starts_with", "ends_with", "ignore_case"}

// BuiltinSpecs returns the static declarative report table. The registry is
// built from this once at process start; YAML definition files can add to it
// but never replace an entry.
func BuiltinSpecs() []ReportSpec {
	return []ReportSpec{
		{
			Name:        "Collections",
			Family:      "Collections",
			Heading:     "Collection Report",
			Description: "Collections matching a search string, with membership counts.",
			Aliases:     []string{"Collection"},
			Formats: []Format{
				{
					Types: []Kind{KindDict, KindList},
					Columns: []Column{
						{Key: "display_name", Label: "Name"},
						{Key: "qualified_name", Label: "Qualified Name"},
						{Key: "category", Label: "Category"},
						{Key: "description", Label: "Description"},
						{Key: "guid", Label: "GUID"},
					},
					Action: Action{
						Function:       "CollectionManager.find_collections",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
				{
					Types: []Kind{KindReport},
					Action: Action{
						Function:       "CollectionManager.find_collections",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
			},
		},
		{
			Name:        "Root-Collections",
			Family:      "Collections",
			Heading:     "Root Collections",
			Description: "Top-level collections that anchor the catalog hierarchy.",
			Aliases:     []string{"Roots"},
			Formats: []Format{
				{
					Types: []Kind{KindDict, KindList},
					Columns: []Column{
						{Key: "display_name", Label: "Name"},
						{Key: "description", Label: "Description"},
						{Key: "guid", Label: "GUID"},
					},
					Action: Action{
						Function:       "CollectionManager.find_collections",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
						SpecParams: map[string]interface{}{
							"classification_names": []interface{}{"RootCollection"},
						},
					},
				},
			},
		},
		{
			Name:        "Digital-Products",
			Family:      "Product Catalog",
			Heading:     "Digital Product Report",
			Description: "Digital products in the catalog with their status and product manager.",
			Aliases:     []string{"DigitalProducts", "Data-Products"},
			Formats: []Format{
				{
					Types: []Kind{KindDict, KindList},
					Columns: []Column{
						{Key: "display_name", Label: "Product"},
						{Key: "product_status", Label: "Status"},
						{Key: "category", Label: "Category"},
						{Key: "description", Label: "Description"},
						{Key: "qualified_name", Label: "Qualified Name"},
					},
					Action: Action{
						Function:       "ProductManager.find_digital_products",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
				{
					Types: []Kind{KindReport, KindMermaid},
					Action: Action{
						Function:       "ProductManager.find_digital_products",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
			},
		},
		{
			Name:        "Data-Dictionary",
			Family:      "Data Dictionary",
			Heading:     "Data Dictionary",
			Description: "Data dictionary collections and the data fields they define.",
			Aliases:     []string{"Data-Dictionaries"},
			Formats: []Format{
				{
					Types: []Kind{KindDict, KindList},
					Columns: []Column{
						{Key: "display_name", Label: "Name"},
						{Key: "description", Label: "Description"},
						{Key: "members", Label: "Members"},
					},
					Action: Action{
						Function:       "CollectionManager.find_collections",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
						SpecParams: map[string]interface{}{
							"classification_names": []interface{}{"DataDictionary"},
						},
					},
				},
			},
		},
		{
			Name:        "Glossaries",
			Family:      "Glossary",
			Heading:     "Glossary Report",
			Description: "Glossaries with language, usage and term counts.",
			Formats: []Format{
				{
					Types: []Kind{KindDict, KindList},
					Columns: []Column{
						{Key: "display_name", Label: "Glossary"},
						{Key: "language", Label: "Language"},
						{Key: "description", Label: "Description"},
						{Key: "usage", Label: "Usage"},
					},
					Action: Action{
						Function:       "GlossaryManager.find_glossaries",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
				{
					Types: []Kind{KindReport},
					Action: Action{
						Function:       "GlossaryManager.find_glossaries",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
			},
		},
		{
			Name:        "Glossary-Terms",
			Family:      "Glossary",
			Heading:     "Glossary Terms",
			Description: "Glossary terms matching a search string, with summary and status.",
			Aliases:     []string{"Terms", "Glossary-Term"},
			Formats: []Format{
				{
					Types: []Kind{KindDict, KindList},
					Columns: []Column{
						{Key: "display_name", Label: "Term"},
						{Key: "summary", Label: "Summary"},
						{Key: "glossary_name", Label: "Glossary"},
						{Key: "status", Label: "Status"},
						{Key: "qualified_name", Label: "Qualified Name"},
					},
					Action: Action{
						Function:       "GlossaryManager.find_glossary_terms",
						RequiredParams: []string{"search_string"},
						OptionalParams: append([]string{"glossary_guid"}, searchParams...),
					},
				},
				{
					Types: []Kind{KindReport},
					Action: Action{
						Function:       "GlossaryManager.find_glossary_terms",
						RequiredParams: []string{"search_string"},
						OptionalParams: append([]string{"glossary_guid"}, searchParams...),
					},
				},
			},
		},
		{
			Name:        "Governance-Definitions",
			Family:      "Governance",
			Heading:     "Governance Definitions",
			Description: "Policies, principles and obligations defined by the governance program.",
			Aliases:     []string{"Governance"},
			Formats: []Format{
				{
					Types: []Kind{KindDict, KindList},
					Columns: []Column{
						{Key: "title", Label: "Title"},
						{Key: "type_name", Label: "Type"},
						{Key: "summary", Label: "Summary"},
						{Key: "importance", Label: "Importance"},
						{Key: "status", Label: "Status"},
					},
					Action: Action{
						Function:       "GovernanceOfficer.find_governance_definitions",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
				{
					Types: []Kind{KindReport, KindHTML},
					Action: Action{
						Function:       "GovernanceOfficer.find_governance_definitions",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
			},
		},
		{
			Name:        "Solution-Blueprints",
			Family:      "Solution Architecture",
			Heading:     "Solution Blueprints",
			Description: "Solution blueprints with their components and linked supply chains.",
			Aliases:     []string{"Blueprints"},
			Formats: []Format{
				{
					Types: []Kind{KindDict, KindList},
					Columns: []Column{
						{Key: "display_name", Label: "Blueprint"},
						{Key: "version", Label: "Version"},
						{Key: "description", Label: "Description"},
						{Key: "solution_components", Label: "Components"},
					},
					Action: Action{
						Function:       "SolutionArchitect.find_solution_blueprints",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
				{
					Types: []Kind{KindReport, KindMermaid},
					Action: Action{
						Function:       "SolutionArchitect.find_solution_blueprints",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
			},
		},
		{
			Name:        "Information-Supply-Chains",
			Family:      "Solution Architecture",
			Heading:     "Information Supply Chains",
			Description: "Information supply chains showing how data flows between systems.",
			Aliases:     []string{"Supply-Chains"},
			Formats: []Format{
				{
					Types: []Kind{KindDict, KindList},
					Columns: []Column{
						{Key: "display_name", Label: "Supply Chain"},
						{Key: "scope", Label: "Scope"},
						{Key: "description", Label: "Description"},
					},
					Action: Action{
						Function:       "SolutionArchitect.find_information_supply_chains",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
				{
					Types: []Kind{KindMermaid},
					Action: Action{
						Function:       "SolutionArchitect.find_information_supply_chains",
						RequiredParams: []string{"search_string"},
						OptionalParams: searchParams,
					},
				},
			},
		},
	}
}

// DefaultRegistry builds a registry holding only the built-in report table.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(BuiltinSpecs())
}
