package core

// Color is the role of a screen cell. The platform renderer decides how a
// role looks; tile roles are drawn with a background.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGrid          // board lines
	ColorHighlight     // title and notices

	ColorTileEmpty
	// ColorTile2 through ColorTile2048 are contiguous, one per power of two.
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper // above 2048
)

// IsTile reports whether c is one of the tile roles.
func (c Color) IsTile() bool {
	return c >= ColorTileEmpty && c <= ColorTileSuper
}
