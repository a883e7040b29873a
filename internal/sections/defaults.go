package sections

// DefaultRegistry returns a registry pre-populated with the built-in section renderers.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterDefaults(reg)
	return reg
}

// RegisterDefaults adds the built-in section descriptors to the provided registry.
func RegisterDefaults(reg *Registry) {
	if reg == nil {
		return
	}

	for _, desc := range builtinDescriptors() {
		reg.MustRegister(desc)
	}
}

func builtinDescriptors() []*SectionDescriptor {
	return []*SectionDescriptor{
		{
			Renderer: renderHero,
			Metadata: SectionMetadata{
				Type:        TypeHero,
				Name:        "Hero Section",
				Description: "Full-width banner with badge, highlighted title, two calls to action and an image, video or carousel background",
				Category:    "marketing",
				Icon:        "star",
			},
		},
		{
			Renderer: renderFeatures,
			Metadata: SectionMetadata{
				Type:        TypeFeatures,
				Name:        "Features",
				Description: "Grid of selling points with icons",
				Category:    "marketing",
				Icon:        "check-circle",
			},
		},
		{
			Renderer: renderServices,
			Metadata: SectionMetadata{
				Type:        TypeServices,
				Name:        "Services",
				Description: "Cards listing manufacturing services",
				Category:    "marketing",
				Icon:        "layers",
			},
		},
		{
			Renderer: renderProcess,
			Metadata: SectionMetadata{
				Type:        TypeProcess,
				Name:        "Process",
				Description: "Numbered production timeline",
				Category:    "marketing",
				Icon:        "list-ordered",
			},
		},
		{
			Renderer: renderCTA,
			Metadata: SectionMetadata{
				Type:        TypeCTA,
				Name:        "Call to Action",
				Description: "Closing banner with a single button",
				Category:    "marketing",
				Icon:        "megaphone",
			},
		},
		{
			Renderer: renderText,
			Metadata: SectionMetadata{
				Type:        TypeText,
				Name:        "Text",
				Description: "Heading with paragraphs",
				Category:    "content",
				Icon:        "align-left",
			},
		},
		{
			Renderer: renderText,
			Metadata: SectionMetadata{
				Type:        TypeVisionMission,
				Name:        "Vision & Mission",
				Description: "Vision and mission statements side by side",
				Category:    "content",
				Icon:        "eye",
			},
		},
		{
			Renderer: renderProof,
			Metadata: SectionMetadata{
				Type:        TypeProof,
				Name:        "Proof of Certifications",
				Description: "Gallery of certification documents",
				Category:    "content",
				Icon:        "award",
			},
		},
		{
			Renderer: renderListing,
			Metadata: SectionMetadata{
				Type:        TypeProducts,
				Name:        "Featured Products",
				Description: "Up to three featured products from the catalog",
				Category:    "dynamic",
				Icon:        "package",
			},
		},
		{
			Renderer: renderListing,
			Metadata: SectionMetadata{
				Type:        TypeClients,
				Name:        "Clients",
				Description: "Client logo wall",
				Category:    "dynamic",
				Icon:        "users",
			},
		},
		{
			Renderer: renderListing,
			Metadata: SectionMetadata{
				Type:        TypeReviews,
				Name:        "Reviews",
				Description: "Customer testimonials",
				Category:    "dynamic",
				Icon:        "quote",
			},
		},
	}
}
