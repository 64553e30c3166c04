package catalog

import (
	"strings"

	"glowcart/internal/domain"
)

// Vocabulary for routine requests. The engine is permissive: unrecognized
// values fall through to a default branch rather than failing, because these
// are user preference signals, not contract-checked enums.
const (
	VibeNatural  = "Natural"
	VibeSoftGlam = "Soft Glam"
	VibeBold     = "Bold"

	EnvOffice  = "Office/Daylight"
	EnvEvening = "Indoor Evening"
	EnvOutdoor = "Outdoor/Sunny"
	EnvParty   = "Party"

	UndertoneWarm    = "Warm"
	UndertoneCool    = "Cool"
	UndertoneNeutral = "Neutral"

	EyesDark  = "Brown/Black"
	EyesHazel = "Hazel/Green"
	EyesLight = "Blue/Gray"
)

// Style buckets of a makeup routine.
const (
	BucketLips   = "Lips"
	BucketEyes   = "Eyes"
	BucketBase   = "Base"
	BucketCheeks = "Cheeks"
)

// Buckets lists the style buckets in presentation order.
var Buckets = []string{BucketLips, BucketEyes, BucketBase, BucketCheeks}

// bucketSeedNames holds the category names seeding each style bucket. Bucket
// scope is the named categories plus their direct subcategories.
var bucketSeedNames = map[string][]string{
	BucketLips:   {"Lips", "Lipstick", "Lip Gloss", "Lip Balm", "Lip Pencil"},
	BucketEyes:   {"Eyes", "Eyeshadow", "Mascara", "Eyeliner", "Eye Pencil", "Eyebrow", "Eyebrow Pencil", "Eyebrow Gel"},
	BucketBase:   {"Face", "Primer", "Foundation", "Concealer", "Powder", "Setting Spray", "BB & CC Cream"},
	BucketCheeks: {"Blush", "Highlighter", "Bronzer", "Contour"},
}

// maxShadeKeywords bounds shade-predicate breadth.
const maxShadeKeywords = 4

// maxBucketItems caps each bucket list of a routine.
const maxBucketItems = 12

var undertoneKeywords = map[string][]string{
	UndertoneWarm: {"coral", "peach", "terracotta", "gold", "bronze", "warm pink"},
	UndertoneCool: {"rose", "mauve", "berry", "plum", "taupe", "silver"},
	// Neutral and anything unrecognized share the default set.
	UndertoneNeutral: {"nude", "soft pink", "brown", "champagne"},
}

var eyeColorKeywords = map[string][]string{
	EyesDark:  {"emerald", "navy", "bronze"},
	EyesHazel: {"plum", "mauve", "copper"},
	EyesLight: {"warm brown", "peach", "gold"},
}

var partyTags = []string{"glitter", "metallic", "shimmer", "neon", "vivid"}

var routineTitles = map[string]string{
	"Dry":         "Hydration Glow",
	"Oily":        "Matte Control",
	"Combination": "Soft Balance",
	"Sensitive":   "Calm & Care",
}

const defaultRoutineTitle = "Balanced Radiance"

// Persona is the display metadata attached to a routine recommendation.
type Persona struct {
	Name        string `json:"persona_name,omitempty"`
	Description string `json:"persona_description,omitempty"`
	Icon        string `json:"persona_icon,omitempty"`
	Color       string `json:"persona_color,omitempty"`
}

var vibePersonas = map[string]Persona{
	VibeNatural: {
		Name:        "Fresh Minimalist",
		Description: "Barely-there looks that let skin breathe",
		Icon:        "leaf",
		Color:       "#8FBF9F",
	},
	VibeSoftGlam: {
		Name:        "Soft Glam Muse",
		Description: "Polished finishes with a gentle glow",
		Icon:        "sparkle",
		Color:       "#D8A7B1",
	},
	VibeBold: {
		Name:        "Statement Maker",
		Description: "High-impact color that stays put",
		Icon:        "flame",
		Color:       "#B23A48",
	},
}

// RoutineRequest carries the free-text preference signals driving a persona
// recommendation. Skin, Vibe, Env and Must are required by the transport
// layer; Undertone and EyeColor are optional refinements.
type RoutineRequest struct {
	Skin      string `json:"skin" validate:"required"`
	Vibe      string `json:"vibe" validate:"required"`
	Env       string `json:"env" validate:"required"`
	Must      string `json:"must" validate:"required"`
	Undertone string `json:"undertone,omitempty"`
	EyeColor  string `json:"eye_color,omitempty"`
}

// PersonaRules is the compiled form of a routine request: the derived skin
// mask, the bounded shade keyword lists, and the scoring function used to
// rank candidates inside each bucket.
type PersonaRules struct {
	SkinMask int

	// ShadeKeywords is the general keyword list; EyeShadeKeywords is the
	// Eyes-bucket variant with eye-color boosts appended before truncation.
	ShadeKeywords    []string
	EyeShadeKeywords []string
}

// DeriveRules maps a routine request into its filter and scoring inputs.
func DeriveRules(req *RoutineRequest) *PersonaRules {
	base, ok := undertoneKeywords[req.Undertone]
	if !ok {
		base = undertoneKeywords[UndertoneNeutral]
	}

	eye := append(append([]string{}, base...), eyeColorKeywords[req.EyeColor]...)

	return &PersonaRules{
		SkinMask:         SkinTypeBit(req.Skin),
		ShadeKeywords:    truncateKeywords(base),
		EyeShadeKeywords: truncateKeywords(eye),
	}
}

func truncateKeywords(keywords []string) []string {
	if len(keywords) > maxShadeKeywords {
		keywords = keywords[:maxShadeKeywords]
	}
	return append([]string{}, keywords...)
}

// BucketPredicate builds the full filter for one style bucket: category
// scope, active flag, skin-mask overlap, the vibe and environment clauses,
// and (when keywords exist) the shade-family clause.
func (r *PersonaRules) BucketPredicate(req *RoutineRequest, bucket string, catIDs map[int64]struct{}) Predicate {
	keywords := r.ShadeKeywords
	if bucket == BucketEyes {
		keywords = r.EyeShadeKeywords
	}

	var pred Predicate = func(p *domain.Product) bool {
		if !p.IsActive {
			return false
		}
		if _, ok := catIDs[p.CategoryID]; !ok {
			return false
		}
		return MatchesSkin(p.SkinTypeMask, r.SkinMask)
	}

	pred = pred.And(vibeClause(req.Vibe)).And(envClause(req.Env))

	if len(keywords) > 0 {
		pred = pred.And(shadeClause(keywords))
	}

	return pred
}

func vibeClause(vibe string) Predicate {
	switch vibe {
	case VibeNatural:
		return func(p *domain.Product) bool {
			return p.Finish == domain.FinishNatural || p.Finish == domain.FinishDewy
		}
	case VibeSoftGlam:
		return func(p *domain.Product) bool { return p.Finish != "" }
	case VibeBold:
		return func(p *domain.Product) bool {
			return p.Longwear || p.Coverage == domain.CoverageFull
		}
	default:
		// Unknown vibes place no constraint.
		return func(*domain.Product) bool { return true }
	}
}

func envClause(env string) Predicate {
	switch env {
	case EnvOutdoor:
		return func(p *domain.Product) bool { return p.HasSPF || p.Waterproof }
	case EnvEvening:
		return func(p *domain.Product) bool { return p.PhotoFriendly || p.Longwear }
	case EnvOffice:
		return func(p *domain.Product) bool { return !p.Longwear || p.Finish == domain.FinishNatural }
	case EnvParty:
		return func(p *domain.Product) bool {
			return p.Finish == domain.FinishShimmer || hasAnyTag(p.Tags, partyTags) || p.Longwear
		}
	default:
		return func(*domain.Product) bool { return true }
	}
}

func shadeClause(keywords []string) Predicate {
	return func(p *domain.Product) bool {
		if p.ShadeFamily == "" {
			return false
		}
		shade := strings.ToLower(p.ShadeFamily)
		for _, kw := range keywords {
			if strings.Contains(shade, kw) {
				return true
			}
		}
		return false
	}
}

func hasAnyTag(tags string, wanted []string) bool {
	if tags == "" {
		return false
	}
	lower := strings.ToLower(tags)
	for _, w := range wanted {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Score computes the desirability of a product for the persona. The score
// only ranks candidates inside a bucket; it never filters.
func (r *PersonaRules) Score(req *RoutineRequest, p *domain.Product) int {
	score := 0

	if p.SkinTypeMask&r.SkinMask != 0 {
		score += 4
	}
	if req.Vibe == VibeBold && (p.Longwear || p.Coverage == domain.CoverageFull) {
		score += 3
	}
	if req.Env == EnvOutdoor && (p.Waterproof || p.HasSPF) {
		score += 2
	}
	if req.Env == EnvEvening && p.PhotoFriendly {
		score += 1
	}
	if req.Env == EnvParty {
		if hasAnyTag(p.Tags, partyTags) {
			score += 3
		}
		if p.Longwear {
			score += 2
		}
	}

	return score
}

// RoutineTitle returns the display title for the routine according to the
// requested skin type.
func RoutineTitle(skin string) string {
	if title, ok := routineTitles[skin]; ok {
		return title
	}
	return defaultRoutineTitle
}

// PersonaFor returns display metadata for a vibe; unknown vibes get the
// Soft Glam persona as a neutral middle ground.
func PersonaFor(vibe string) Persona {
	if p, ok := vibePersonas[vibe]; ok {
		return p
	}
	return vibePersonas[VibeSoftGlam]
}

// Badges derives the display badges for a product from its boolean flags.
// Badges are presentation only and never influence ranking.
func Badges(p *domain.Product) []string {
	badges := []string{}
	if p.HasSPF {
		badges = append(badges, "SPF")
	}
	if p.Longwear {
		badges = append(badges, "Longwear")
	}
	if p.Waterproof {
		badges = append(badges, "Waterproof")
	}
	if p.PhotoFriendly {
		badges = append(badges, "Photo")
	}
	return badges
}
