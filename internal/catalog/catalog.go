// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the hand-authored category taxonomy for the
// interior design library. The catalog is the authoritative source for
// category structure (names, order, subcategory identity); per-subcategory
// media counters are authoritative in the database and merged in by the
// reconciler.
package catalog

import "interiorlib/internal/models"

// sub is a shorthand constructor; catalog counters always start at zero.
func sub(id, name string) models.SubCategory {
	return models.SubCategory{ID: id, Name: name}
}

// defaults is the built-in taxonomy. Subcategory order is display order.
var defaults = []models.Category{
	{
		ID: "kitchen", Name: "Kitchen", Icon: "ChefHat", Emoji: "🍳",
		Description: "Modern kitchen designs from modular to luxury",
		Color:       "#f59e0b",
		SubCategories: []models.SubCategory{
			sub("l-shape", "L-Shape Kitchen"),
			sub("u-shape", "U-Shape Kitchen"),
			sub("parallel", "Parallel Kitchen"),
			sub("island", "Island Kitchen"),
			sub("g-shape", "G-Shape Kitchen"),
			sub("straight", "Straight Kitchen"),
			sub("open", "Open Kitchen"),
			sub("modular", "Modular Kitchen"),
			sub("small", "Small Kitchen"),
			sub("luxury", "Luxury Kitchen"),
		},
	},
	{
		ID: "living-area", Name: "Living Area", Icon: "Sofa", Emoji: "🛋️",
		Description: "Stunning living room designs and wall treatments",
		Color:       "#8b5cf6",
		SubCategories: []models.SubCategory{
			sub("tv-unit", "TV Unit Design"),
			sub("cnc-wall", "CNC Wall Design"),
			sub("wall-paneling", "Wall Paneling"),
			sub("sofa-back", "Sofa Back Panel"),
			sub("partition", "Partition Design"),
			sub("wallpaper", "Wallpaper Design"),
			sub("lighting", "Lighting Design"),
			sub("ceiling", "Living False Ceiling"),
		},
	},
	{
		ID: "bedroom", Name: "Bedroom", Icon: "Bed", Emoji: "🛏️",
		Description: "Cozy and elegant bedroom interiors",
		Color:       "#ec4899",
		SubCategories: []models.SubCategory{
			sub("master", "Master Bedroom"),
			sub("kids", "Kids Bedroom"),
			sub("guest", "Guest Bedroom"),
			sub("bed-back", "Bed Back Panel"),
			sub("lighting", "Bedroom Lighting"),
			sub("ceiling", "Bedroom False Ceiling"),
		},
	},
	{
		ID: "dining-area", Name: "Dining Area", Icon: "UtensilsCrossed", Emoji: "🍽️",
		Description: "Elegant dining room setups and designs",
		Color:       "#14b8a6",
		SubCategories: []models.SubCategory{
			sub("table", "Dining Table Design"),
			sub("crockery", "Crockery Unit"),
			sub("bar", "Bar Unit"),
			sub("wall-panel", "Dining Wall Panel"),
			sub("ceiling", "Dining False Ceiling"),
		},
	},
	{
		ID: "bathroom", Name: "Bathroom", Icon: "Bath", Emoji: "🚿",
		Description: "Modern and luxury bathroom designs",
		Color:       "#06b6d4",
		SubCategories: []models.SubCategory{
			sub("modern", "Modern Bathroom"),
			sub("luxury", "Luxury Bathroom"),
			sub("small", "Small Bathroom"),
			sub("vanity", "Vanity Unit"),
			sub("shower", "Shower Area"),
			sub("tile", "Tile Design"),
		},
	},
	{
		ID: "wardrobe", Name: "Wardrobe", Icon: "DoorOpen", Emoji: "🚪",
		Description: "Stylish wardrobe and storage solutions",
		Color:       "#a855f7",
		SubCategories: []models.SubCategory{
			sub("sliding", "Sliding Wardrobe"),
			sub("hinged", "Hinged Wardrobe"),
			sub("walkin", "Walk-in Wardrobe"),
			sub("open", "Open Wardrobe"),
			sub("glass", "Glass Wardrobe"),
			sub("kids", "Kids Wardrobe"),
		},
	},
	{
		ID: "false-ceiling", Name: "False Ceiling", Icon: "LayoutGrid", Emoji: "🎯",
		Description: "Designer false ceiling patterns and styles",
		Color:       "#f97316",
		SubCategories: []models.SubCategory{
			sub("gypsum", "Gypsum Ceiling"),
			sub("pop", "POP Ceiling"),
			sub("wooden", "Wooden Ceiling"),
			sub("designer", "Designer Ceiling"),
			sub("cove", "Cove Lighting Ceiling"),
			sub("minimal", "Minimal Ceiling"),
		},
	},
	{
		ID: "wall-decor", Name: "Wall Décor", Icon: "Frame", Emoji: "🖼️",
		Description: "Creative wall decoration ideas",
		Color:       "#eab308",
		SubCategories: []models.SubCategory{
			sub("cnc", "CNC Wall Design"),
			sub("wallpaper", "Wallpaper"),
			sub("paneling", "Wall Paneling"),
			sub("3d-panels", "3D Wall Panels"),
			sub("texture", "Paint & Texture"),
			sub("art", "Wall Art"),
		},
	},
	{
		ID: "facade", Name: "Facade / Exterior", Icon: "Building2", Emoji: "🏢",
		Description: "Stunning building exteriors and facades",
		Color:       "#64748b",
		SubCategories: []models.SubCategory{
			sub("modern", "Modern Facade"),
			sub("luxury", "Luxury Facade"),
			sub("glass", "Glass Elevation"),
			sub("stone", "Stone Cladding"),
			sub("wooden", "Wooden Cladding"),
			sub("balcony", "Balcony Facade"),
		},
	},
	{
		ID: "balcony", Name: "Balcony", Icon: "Trees", Emoji: "🌿",
		Description: "Beautiful balcony designs and gardens",
		Color:       "#22c55e",
		SubCategories: []models.SubCategory{
			sub("open", "Open Balcony"),
			sub("covered", "Covered Balcony"),
			sub("seating", "Balcony Seating"),
			sub("garden", "Balcony Garden"),
			sub("glass-railing", "Glass Railing Balcony"),
		},
	},
	{
		ID: "temple-room", Name: "Temple Room", Icon: "Landmark", Emoji: "🛕",
		Description: "Sacred temple and pooja room designs",
		Color:       "#dc2626",
		SubCategories: []models.SubCategory{
			sub("wooden", "Wooden Mandir"),
			sub("marble", "Marble Mandir"),
			sub("wall-mounted", "Wall Mounted Mandir"),
			sub("traditional", "Traditional Temple"),
			sub("modern", "Modern Temple Design"),
		},
	},
	{
		ID: "study-room", Name: "Library / Study Room", Icon: "BookOpen", Emoji: "📚",
		Description: "Productive study and home office spaces",
		Color:       "#2563eb",
		SubCategories: []models.SubCategory{
			sub("home-library", "Home Library"),
			sub("study-table", "Study Table Design"),
			sub("bookshelf", "Bookshelf Design"),
			sub("kids-study", "Kids Study Room"),
			sub("home-office", "Home Office"),
		},
	},
	{
		ID: "entertainment", Name: "Entertainment Room", Icon: "Clapperboard", Emoji: "🎬",
		Description: "Home theatres and gaming spaces",
		Color:       "#7c3aed",
		SubCategories: []models.SubCategory{
			sub("theatre", "Home Theatre"),
			sub("gaming", "Gaming Room"),
			sub("music", "Music Room"),
			sub("media-wall", "Media Wall Design"),
			sub("acoustic", "Acoustic Panel Design"),
		},
	},
	{
		ID: "commercial", Name: "Commercial Interior", Icon: "Store", Emoji: "🏬",
		Description: "Professional commercial space designs",
		Color:       "#0891b2",
		SubCategories: []models.SubCategory{
			sub("office", "Office Interior"),
			sub("retail", "Retail Shop"),
			sub("restaurant", "Restaurant Interior"),
			sub("cafe", "Cafe Interior"),
			sub("salon", "Salon Interior"),
			sub("clinic", "Clinic / Hospital Interior"),
		},
	},
	{
		ID: "materials", Name: "Materials & Finishes", Icon: "Layers", Emoji: "🧱",
		Description: "Material samples and finish options",
		Color:       "#78716c",
		SubCategories: []models.SubCategory{
			sub("laminates", "Laminates"),
			sub("plywood", "Plywood"),
			sub("mdf", "MDF"),
			sub("acrylic", "Acrylic"),
			sub("glass", "Glass"),
			sub("marble", "Marble"),
			sub("tiles", "Tiles"),
			sub("hardware", "Hardware"),
			sub("lighting", "Lighting"),
		},
	},
}

// Default returns a fresh deep copy of the built-in catalog. Callers may
// mutate the result freely.
func Default() []models.Category {
	out := make([]models.Category, len(defaults))
	for i := range defaults {
		out[i] = defaults[i].Clone()
	}
	return out
}

// Find returns the catalog category with the given ID, or nil.
func Find(id string) *models.Category {
	for i := range defaults {
		if defaults[i].ID == id {
			c := defaults[i].Clone()
			return &c
		}
	}
	return nil
}

// Tag is a curated filter label shown alongside categories.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Tags is the curated tag list for filtering media.
var Tags = []Tag{
	{ID: "luxury", Name: "Luxury", Color: "#eab308"},
	{ID: "modular", Name: "Modular", Color: "#8b5cf6"},
	{ID: "small-space", Name: "Small Space", Color: "#06b6d4"},
	{ID: "budget", Name: "Budget Friendly", Color: "#22c55e"},
	{ID: "modern", Name: "Modern", Color: "#3b82f6"},
	{ID: "traditional", Name: "Traditional", Color: "#f97316"},
	{ID: "minimalist", Name: "Minimalist", Color: "#64748b"},
	{ID: "premium", Name: "Premium", Color: "#ec4899"},
}
