package capability

// Factory produces a fresh, unconnected capability instance. The dispatcher
// creates one instance per dispatch and never pools them.
type Factory func(creds Credentials) Capability

// NewCollectionManager manages collections, folders and their membership.
func NewCollectionManager(creds Credentials) Capability {
	return newRESTCapability("CollectionManager", "collection-manager", map[string]string{
		"find_collections":        "collections/by-search-string",
		"get_collection_members":  "collections/members/by-search-string",
		"get_classified_elements": "elements/by-classification",
	}, creds)
}

// NewGlossaryManager serves glossaries, terms and categories.
func NewGlossaryManager(creds Credentials) Capability {
	return newRESTCapability("GlossaryManager", "glossary-manager", map[string]string{
		"find_glossaries":     "glossaries/by-search-string",
		"find_glossary_terms": "glossaries/terms/by-search-string",
	}, creds)
}

// NewProductManager serves the digital product catalog.
func NewProductManager(creds Credentials) Capability {
	return newRESTCapability("ProductManager", "product-manager", map[string]string{
		"find_digital_products": "digital-products/by-search-string",
	}, creds)
}

// NewGovernanceOfficer serves governance definitions.
func NewGovernanceOfficer(creds Credentials) Capability {
	return newRESTCapability("GovernanceOfficer", "governance-officer", map[string]string{
		"find_governance_definitions": "governance-definitions/by-search-string",
	}, creds)
}

// NewSolutionArchitect serves solution blueprints and supply chains.
func NewSolutionArchitect(creds Credentials) Capability {
	return newRESTCapability("SolutionArchitect", "solution-architect", map[string]string{
		"find_solution_blueprints":       "solution-blueprints/by-search-string",
		"find_information_supply_chains": "information-supply-chains/by-search-string",
	}, creds)
}

// NewGeneric is the fallback for capability names outside the registry. It
// accepts any operation, deriving the URL path from the operation name, so
// report definitions can reach view services this build has no dedicated
// wrapper for.
func NewGeneric(creds Credentials) Capability {
	return newRESTCapability("Generic", "metadata-explorer", nil, creds)
}
