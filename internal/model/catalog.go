package model

// Catalog is the fixed set of symbols and decorations a round is built from
type Catalog struct {
	Symbols     []Symbol     `json:"symbols" mapstructure:"symbols"`
	Decorations []Decoration `json:"decorations" mapstructure:"decorations"`
}

// DefaultCatalog returns the built-in catalog of six environmental themes
func DefaultCatalog() Catalog {
	return Catalog{
		Symbols: []Symbol{
			{ID: "climate", Label: "Climate change", Glyph: "🌡️"},
			{ID: "deforestation", Label: "Deforestation", Glyph: "🪓"},
			{ID: "noise", Label: "Noise pollution", Glyph: "📢"},
			{ID: "pesticides", Label: "Pesticides", Glyph: "🧪"},
			{ID: "soil", Label: "Soil pollution", Glyph: "🪨"},
			{ID: "water", Label: "Water pollution", Glyph: "💧"},
		},
		Decorations: []Decoration{
			{ID: "triangle", Glyph: "▲"},
			{ID: "square", Glyph: "■"},
			{ID: "star", Glyph: "★"},
		},
	}
}

// Validate checks that rounds can be built from the catalog
func (c Catalog) Validate() error {
	if len(c.Symbols) == 0 || len(c.Decorations) == 0 {
		return ErrInvalidCatalog
	}
	seen := make(map[SymbolID]bool, len(c.Symbols))
	for _, s := range c.Symbols {
		if s.ID == "" || seen[s.ID] {
			return ErrInvalidCatalog
		}
		seen[s.ID] = true
	}
	return nil
}

// Symbol returns the catalog entry for id, or false if it is unknown
func (c Catalog) Symbol(id SymbolID) (Symbol, bool) {
	for _, s := range c.Symbols {
		if s.ID == id {
			return s, true
		}
	}
	return Symbol{}, false
}

// Decoration returns the catalog entry for id, or false if it is unknown
func (c Catalog) Decoration(id DecorationID) (Decoration, bool) {
	for _, d := range c.Decorations {
		if d.ID == id {
			return d, true
		}
	}
	return Decoration{}, false
}
