package catalog

// DefaultWords is the built-in mob word pool.
var DefaultWords = []string{
	"STRUCTURE", "DRAFT", "BLUEPRINT", "DESIGN", "BEAM", "COLUMN",
	"ARCH", "VAULT", "TRUSS", "GRID", "SCALE", "PLAN", "SECTION",
	"ELEVATION", "DETAIL", "LAYER", "VECTOR", "RENDER", "MODEL",
	"FRAME", "STEEL", "CONCRETE", "GLASS", "STONE", "BRICK",
	"FADE", "LINE", "SHAPE", "FORM", "SPACE", "VOID", "SOLID",
}

// Words returns a copy of the default pool.
func Words() []string {
	out := make([]string, len(DefaultWords))
	copy(out, DefaultWords)
	return out
}
