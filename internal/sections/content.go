package sections

import (
	"ellavera-site/internal/models"
)

// Known section types.
const (
	TypeHero          = "hero"
	TypeFeatures      = "features"
	TypeServices      = "services"
	TypeProcess       = "process"
	TypeCTA           = "cta"
	TypeText          = "text"
	TypeVisionMission = "vision_mission"
	TypeProof         = "proof_certifications"
	TypeProducts      = "products"
	TypeClients       = "clients"
	TypeReviews       = "reviews"
)

// KnownTypes lists every section type with a typed content variant, in the
// order the editor offers them.
func KnownTypes() []string {
	return []string{
		TypeHero,
		TypeFeatures,
		TypeServices,
		TypeProcess,
		TypeCTA,
		TypeText,
		TypeVisionMission,
		TypeProof,
		TypeProducts,
		TypeClients,
		TypeReviews,
	}
}

// IsKnownType reports whether sectionType has a typed content variant.
func IsKnownType(sectionType string) bool {
	sectionType = NormalizeType(sectionType)
	for _, known := range KnownTypes() {
		if known == sectionType {
			return true
		}
	}
	return false
}

// Content is the decoded payload of a section. The set of implementations is
// closed; UnknownContent carries anything without a typed variant.
type Content interface {
	// Type returns the normalised section type the content was decoded for.
	Type() string
	// Encode returns the wire mapping with every contract key present.
	Encode() map[string]interface{}

	sealed()
}

// Decode turns a raw content mapping into its typed variant. It never fails:
// missing or malformed keys take their defaults.
func Decode(sectionType string, raw map[string]interface{}) Content {
	if raw == nil {
		raw = map[string]interface{}{}
	}
	switch NormalizeType(sectionType) {
	case TypeHero:
		return decodeHero(raw)
	case TypeFeatures:
		return decodeFeatures(raw)
	case TypeServices:
		return decodeServices(raw)
	case TypeProcess:
		return decodeProcess(raw)
	case TypeCTA:
		return decodeCTA(raw)
	case TypeText:
		return decodeText(TypeText, raw)
	case TypeVisionMission:
		return decodeText(TypeVisionMission, raw)
	case TypeProof:
		return decodeProof(raw)
	case TypeProducts, TypeClients, TypeReviews:
		return decodeListing(NormalizeType(sectionType), raw)
	default:
		return UnknownContent{SectionType: NormalizeType(sectionType), Raw: models.JSONMap(raw).Clone()}
	}
}

// DecodeSection decodes the content of a stored section.
func DecodeSection(section models.PageSection) Content {
	return Decode(section.SectionType, section.Content)
}

// DefaultsFor returns the default content for a section type. Unknown types
// yield an empty mapping.
func DefaultsFor(sectionType string) map[string]interface{} {
	if !IsKnownType(sectionType) {
		return map[string]interface{}{}
	}
	return Decode(sectionType, nil).Encode()
}

// UnknownContent is the opaque payload of a type without a typed variant.
type UnknownContent struct {
	SectionType string
	Raw         models.JSONMap
}

func (c UnknownContent) Type() string { return c.SectionType }

func (c UnknownContent) Encode() map[string]interface{} {
	return c.Raw.Clone()
}

func (UnknownContent) sealed() {}
