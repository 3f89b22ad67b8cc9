// Package catalog holds the static reference data for the restaurant:
// menu packs, add-ons and per-event recommendations. Loaded once as Go
// literals and read-only after startup; Validate is run from main so a
// malformed table is a startup failure, not a per-message surprise.
package catalog

import (
	"fmt"
	"strings"
)

// MenuPack is a priced per-person bundle selectable at the menu step
type MenuPack struct {
	Key            string
	NameEN         string
	NameTA         string
	PricePerPerson int
	MinPeople      int
	ItemsEN        []string
}

// Addon is an optional priced extra selectable at the add-ons step
type Addon struct {
	Key    string
	NameEN string
	NameTA string
	Price  int
}

// Recommendation suggests a pack and add-ons for a known event type
type Recommendation struct {
	EventType string
	Pack      string
	Addons    []string
	MessageEN string
	MessageTA string
}

// packOrder fixes the display order and the positional aliases ("1".."4")
var packOrder = []string{"veg", "nonveg", "premium", "deluxe"}

var packs = map[string]*MenuPack{
	"veg": {
		Key:            "veg",
		NameEN:         "Pure Veg Delight",
		NameTA:         "சைவ விருந்து",
		PricePerPerson: 399,
		MinPeople:      2,
		ItemsEN: []string{
			"Paneer Tikka", "Veg Biryani", "Gobi 65", "Roti with Paneer Butter Masala",
			"Dal Makhani", "Raita & Papad", "Gulab Jamun", "Welcome Drink",
		},
	},
	"nonveg": {
		Key:            "nonveg",
		NameEN:         "Non-Veg Classic",
		NameTA:         "அசைவ கிளாசிக்",
		PricePerPerson: 499,
		MinPeople:      2,
		ItemsEN: []string{
			"Chicken 65", "Chicken Biryani", "Grilled Tandoori Chicken", "Roti with Chicken Curry",
			"Egg Curry", "Raita & Papad", "Ice Cream", "Welcome Drink",
		},
	},
	"premium": {
		Key:            "premium",
		NameEN:         "Premium Royal Feast",
		NameTA:         "பிரீமியம் ராயல் விருந்து",
		PricePerPerson: 749,
		MinPeople:      4,
		ItemsEN: []string{
			"Mutton Seekh Kebab", "Prawns 65", "Mutton Biryani", "Tandoori Platter",
			"Butter Naan with Rogan Josh", "Fish Moilee", "Dessert Platter", "Mocktails",
		},
	},
	"deluxe": {
		Key:            "deluxe",
		NameEN:         "Grand Deluxe Experience",
		NameTA:         "கிராண்ட் டீலக்ஸ் அனுபவம்",
		PricePerPerson: 999,
		MinPeople:      10,
		ItemsEN: []string{
			"Live Grill Counter", "Seafood Platter", "Chef's Special Biryani", "International Platter",
			"Live Pasta Counter", "Premium Tandoor Selection", "Live Dessert Counter", "Complimentary Cake",
		},
	},
}

// packAliases maps lowercase user vocabulary to pack keys. Adding a new
// spelling here never touches control flow.
var packAliases = map[string]string{
	"veg": "veg", "vegetarian": "veg", "veg pack": "veg", "saiva": "veg", "1": "veg",
	"nonveg": "nonveg", "non-veg": "nonveg", "non veg": "nonveg", "nonveg pack": "nonveg",
	"chicken": "nonveg", "2": "nonveg",
	"premium": "premium", "premium pack": "premium", "special": "premium", "royal": "premium", "3": "premium",
	"deluxe": "deluxe", "deluxe pack": "deluxe", "grand": "deluxe", "party pack": "deluxe", "4": "deluxe",
}

var addonOrder = []string{
	"decoration", "cake", "photography", "music_system", "dj", "live_music", "flowers", "balloons",
}

var addons = map[string]*Addon{
	"decoration":   {Key: "decoration", NameEN: "Theme Decoration", NameTA: "தீம் அலங்காரம்", Price: 2500},
	"cake":         {Key: "cake", NameEN: "Designer Cake", NameTA: "டிசைனர் கேக்", Price: 1200},
	"photography":  {Key: "photography", NameEN: "Professional Photography", NameTA: "தொழில்முறை புகைப்படம்", Price: 3500},
	"music_system": {Key: "music_system", NameEN: "Sound System", NameTA: "ஒலி அமைப்பு", Price: 1500},
	"dj":           {Key: "dj", NameEN: "DJ & Party Lights", NameTA: "டிஜே & பார்ட்டி லைட்ஸ்", Price: 5000},
	"live_music":   {Key: "live_music", NameEN: "Live Music Band", NameTA: "லைவ் மியூசிக் பேண்ட்", Price: 8000},
	"flowers":      {Key: "flowers", NameEN: "Flower Arrangement", NameTA: "மலர் அலங்காரம்", Price: 2000},
	"balloons":     {Key: "balloons", NameEN: "Balloon Decoration", NameTA: "பலூன் அலங்காரம்", Price: 1800},
}

var addonAliases = map[string]string{
	"decoration": "decoration", "decor": "decoration", "theme decoration": "decoration",
	"cake": "cake", "designer cake": "cake",
	"photography": "photography", "photo": "photography", "photographer": "photography", "photos": "photography",
	"music_system": "music_system", "music system": "music_system", "sound system": "music_system",
	"music": "music_system", "speaker": "music_system", "speakers": "music_system",
	"dj": "dj", "party lights": "dj",
	"live_music": "live_music", "live music": "live_music", "band": "live_music", "live band": "live_music",
	"flowers": "flowers", "flower": "flowers", "bouquet": "flowers", "garland": "flowers",
	"balloons": "balloons", "balloon": "balloons",
}

var recommendations = []*Recommendation{
	{
		EventType: "Birthday", Pack: "nonveg", Addons: []string{"decoration", "cake", "balloons"},
		MessageEN: "For birthdays we recommend the Non-Veg Classic pack with decoration, cake & balloons.",
		MessageTA: "பிறந்தநாளுக்கு அசைவ கிளாசிக் பேக் + அலங்காரம், கேக் & பலூன் பரிந்துரைக்கிறோம்!",
	},
	{
		EventType: "Engagement", Pack: "premium", Addons: []string{"decoration", "photography", "flowers"},
		MessageEN: "For engagements the Premium Royal Feast with photography and flower decoration is perfect.",
		MessageTA: "நிச்சயதார்த்தத்திற்கு பிரீமியம் ராயல் பேக் + புகைப்படம் & மலர் அலங்காரம் சிறந்தது!",
	},
	{
		EventType: "Anniversary", Pack: "premium", Addons: []string{"decoration", "cake", "live_music"},
		MessageEN: "Celebrate your special day with the Premium feast, decoration and live music.",
		MessageTA: "உங்கள் திருமண நாளை பிரீமியம் விருந்து & லைவ் மியூசிக்குடன் கொண்டாடுங்கள்!",
	},
	{
		EventType: "Corporate Event", Pack: "nonveg", Addons: []string{"music_system"},
		MessageEN: "For corporate events Non-Veg Classic with a sound system works great.",
		MessageTA: "கார்ப்பரேட் நிகழ்வுகளுக்கு அசைவ கிளாசிக் + ஒலி அமைப்பு சிறந்தது!",
	},
	{
		EventType: "Family Dinner", Pack: "veg", Addons: nil,
		MessageEN: "For family dinners our Pure Veg Delight is a crowd-pleaser.",
		MessageTA: "குடும்ப விருந்துக்கு சைவ விருந்து எல்லோருக்கும் பிடிக்கும்!",
	},
	{
		EventType: "Friends Gathering", Pack: "nonveg", Addons: []string{"dj", "balloons"},
		MessageEN: "Party time! Non-Veg Classic with DJ and balloon decoration for maximum fun.",
		MessageTA: "பார்ட்டி நேரம்! அசைவ கிளாசிக் + டிஜே & பலூன் அலங்காரம்!",
	},
	{
		EventType: "Wedding Reception", Pack: "deluxe", Addons: []string{"decoration", "photography", "dj", "flowers"},
		MessageEN: "For wedding receptions our Grand Deluxe Experience with full decoration and photography is ideal.",
		MessageTA: "திருமண வரவேற்புக்கு கிராண்ட் டீலக்ஸ் + முழு அலங்காரம் & புகைப்படம் சிறந்தது!",
	},
	{
		EventType: "Baby Shower", Pack: "veg", Addons: []string{"decoration", "cake", "photography", "balloons"},
		MessageEN: "Baby showers are special! The Veg pack with decorations, cake and photography.",
		MessageTA: "பேபி ஷவர் சிறப்பானது! சைவ பேக் + அலங்காரம், கேக் & புகைப்படம்!",
	},
	{
		EventType: "Farewell Party", Pack: "nonveg", Addons: []string{"decoration", "music_system"},
		MessageEN: "Make farewells memorable with Non-Veg Classic, decoration and a speech setup.",
		MessageTA: "பிரியா விடை நிகழ்வை மறக்கமுடியாததாக்குங்கள்!",
	},
}

// Pack returns the menu pack with the given key
func Pack(key string) (*MenuPack, bool) {
	p, ok := packs[key]
	return p, ok
}

// Packs returns all menu packs in display order
func Packs() []*MenuPack {
	out := make([]*MenuPack, 0, len(packOrder))
	for _, k := range packOrder {
		out = append(out, packs[k])
	}
	return out
}

// ResolvePack maps a lowercase alias to a pack key
func ResolvePack(alias string) (string, bool) {
	key, ok := packAliases[strings.ToLower(strings.TrimSpace(alias))]
	return key, ok
}

// Addons returns all add-ons in display order
func Addons() []*Addon {
	out := make([]*Addon, 0, len(addonOrder))
	for _, k := range addonOrder {
		out = append(out, addons[k])
	}
	return out
}

// ResolveAddon maps a lowercase alias to an add-on key
func ResolveAddon(alias string) (string, bool) {
	key, ok := addonAliases[strings.ToLower(strings.TrimSpace(alias))]
	return key, ok
}

// RecommendationFor matches an event type against the known set,
// case-insensitively and in either containment direction, mirroring how
// guests describe events ("birthday party" matches "Birthday").
func RecommendationFor(event string) (*Recommendation, bool) {
	needle := strings.ToLower(strings.TrimSpace(event))
	if needle == "" {
		return nil, false
	}
	for _, rec := range recommendations {
		known := strings.ToLower(rec.EventType)
		if strings.Contains(needle, known) || strings.Contains(known, needle) {
			return rec, true
		}
	}
	return nil, false
}

// PackName returns the localized display name for a pack key
func PackName(key, language string) string {
	p, ok := packs[key]
	if !ok {
		return key
	}
	if language == "ta" {
		return p.NameTA
	}
	return p.NameEN
}

// AddonName returns the localized display name for an add-on key
func AddonName(key, language string) string {
	a, ok := addons[key]
	if !ok {
		return key
	}
	if language == "ta" {
		return a.NameTA
	}
	return a.NameEN
}

// Cost computes the pricing breakdown for a selection. The caller is
// expected to pass keys that already passed validation.
func Cost(packKey string, people int, addonKeys []string) (base, addon, total int) {
	if p, ok := packs[packKey]; ok {
		base = p.PricePerPerson * people
	}
	for _, k := range addonKeys {
		if a, ok := addons[k]; ok {
			addon += a.Price
		}
	}
	return base, addon, base + addon
}

// Validate checks the reference tables for internal consistency.
// Run once at startup; a failure here prevents process start.
func Validate() error {
	for _, k := range packOrder {
		p, ok := packs[k]
		if !ok {
			return fmt.Errorf("catalog: pack %q in display order but not defined", k)
		}
		if p.PricePerPerson <= 0 {
			return fmt.Errorf("catalog: pack %q has non-positive price", k)
		}
		if p.NameEN == "" || p.NameTA == "" {
			return fmt.Errorf("catalog: pack %q missing a localized name", k)
		}
	}
	for alias, key := range packAliases {
		if _, ok := packs[key]; !ok {
			return fmt.Errorf("catalog: pack alias %q points at unknown pack %q", alias, key)
		}
	}
	for _, k := range addonOrder {
		a, ok := addons[k]
		if !ok {
			return fmt.Errorf("catalog: add-on %q in display order but not defined", k)
		}
		if a.Price <= 0 {
			return fmt.Errorf("catalog: add-on %q has non-positive price", k)
		}
		if a.NameEN == "" || a.NameTA == "" {
			return fmt.Errorf("catalog: add-on %q missing a localized name", k)
		}
	}
	for alias, key := range addonAliases {
		if _, ok := addons[key]; !ok {
			return fmt.Errorf("catalog: add-on alias %q points at unknown add-on %q", alias, key)
		}
	}
	for _, rec := range recommendations {
		if _, ok := packs[rec.Pack]; !ok {
			return fmt.Errorf("catalog: recommendation for %q references unknown pack %q", rec.EventType, rec.Pack)
		}
		for _, ak := range rec.Addons {
			if _, ok := addons[ak]; !ok {
				return fmt.Errorf("catalog: recommendation for %q references unknown add-on %q", rec.EventType, ak)
			}
		}
	}
	return nil
}
