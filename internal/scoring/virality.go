package scoring

// Virality scores how much attention a ticker is drawing (0-100),
// from relative volume and recent news-mention counts:
//
//	rel_volume    <= 60
//	news_mentions <= 40
func Virality(in Inputs) Result {
	r := newResult()

	r.add("rel_volume", relVolumePoints(in.RelVolume))
	r.add("news_mentions", newsMentionPoints(in.NewsMentions))

	r.clip()
	return r
}

// relVolumePoints maps volume-vs-average to points (max 60).
func relVolumePoints(rv *float64) int {
	if rv == nil {
		return 0
	}
	switch {
	case *rv > 10:
		return 60
	case *rv > 5:
		return 48
	case *rv > 3:
		return 36
	case *rv > 2:
		return 24
	case *rv > 1.5:
		return 12
	default:
		return 0
	}
}

// newsMentionPoints maps recent headline counts to points (max 40).
func newsMentionPoints(mentions *int) int {
	if mentions == nil {
		return 0
	}
	switch {
	case *mentions >= 20:
		return 40
	case *mentions >= 10:
		return 28
	case *mentions >= 5:
		return 16
	case *mentions >= 1:
		return 8
	default:
		return 0
	}
}
