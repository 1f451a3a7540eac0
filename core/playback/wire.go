package playback

// Track is a raw playback API track object. Preview is null for tracks
// without a preview clip and Duration is in seconds; both get fixed up in
// core/normalize.
type Track struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Duration int     `json:"duration"`
	Preview  *string `json:"preview"`
	Artist   struct {
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		Title       string `json:"title"`
		CoverMedium string `json:"cover_medium"`
	} `json:"album"`
}
