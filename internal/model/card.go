package model

// SymbolID identifies a face symbol in the catalog
type SymbolID string

// DecorationID identifies a card-back decoration
type DecorationID string

// Symbol is a catalog entry shown on the face of a card
type Symbol struct {
	ID    SymbolID `json:"id" mapstructure:"id"`
	Label string   `json:"label" mapstructure:"label"`
	Glyph string   `json:"glyph" mapstructure:"glyph"`
}

// Decoration is a purely cosmetic card back
type Decoration struct {
	ID    DecorationID `json:"id" mapstructure:"id"`
	Glyph string       `json:"glyph" mapstructure:"glyph"`
}

// Card is a single slot in a round's shuffled sequence
type Card struct {
	ID         int          // Position in the shuffled sequence, fixed for the round
	Symbol     SymbolID     // Face symbol; exactly two cards share each symbol
	Decoration DecorationID // Back decoration, sampled per card
	FaceUp     bool
}
