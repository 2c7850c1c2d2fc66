package expression

// The constant table every expression is evaluated against. Built once at
// process start and never mutated afterwards, so concurrent evaluations can
// share it without locking. Grouped names (reference devices, layout enums,
// text attributes) are nested maps so expressions address them with member
// syntax: iPhoneX.width, flexDirection.row, textAlignment.center.
var constants = buildConstants()

func device(width, height float64) map[string]any {
	return map[string]any{"width": width, "height": height}
}

func buildConstants() map[string]any {
	return map[string]any{
		// device idioms
		"unspecified": float64(IdiomUnspecified),
		"phone":       float64(IdiomPhone),
		"pad":         float64(IdiomPad),
		"tv":          float64(IdiomTV),
		"carplay":     float64(IdiomCarPlay),
		"mac":         float64(IdiomMac),

		// orientations
		"portrait":  float64(OrientationPortrait),
		"landscape": float64(OrientationLandscape),

		// size classes
		"undefined": float64(SizeClassUndefined),
		"compact":   float64(SizeClassCompact),
		"regular":   float64(SizeClassRegular),

		// fallback guard of conditional values
		"default": 1.0,

		// reference device screens, points
		"iPhoneSE":    device(320, 568),
		"iPhone8":     device(375, 667),
		"iPhone8Plus": device(414, 736),
		"iPhoneX":     device(375, 812),

		// layout engine enumerations
		"direction": map[string]any{
			"inherit": 0.0,
			"ltr":     1.0,
			"rtl":     2.0,
		},
		"flexDirection": map[string]any{
			"column":        0.0,
			"columnReverse": 1.0,
			"row":           2.0,
			"rowReverse":    3.0,
		},
		"justify": map[string]any{
			"flexStart":    0.0,
			"center":       1.0,
			"flexEnd":      2.0,
			"spaceBetween": 3.0,
			"spaceAround":  4.0,
			"spaceEvenly":  5.0,
		},
		"align": map[string]any{
			"auto":         0.0,
			"flexStart":    1.0,
			"center":       2.0,
			"flexEnd":      3.0,
			"stretch":      4.0,
			"baseline":     5.0,
			"spaceBetween": 6.0,
			"spaceAround":  7.0,
		},
		"position": map[string]any{
			"relative": 0.0,
			"absolute": 1.0,
		},
		"wrap": map[string]any{
			"noWrap":      0.0,
			"wrap":        1.0,
			"wrapReverse": 2.0,
		},
		"overflow": map[string]any{
			"visible": 0.0,
			"hidden":  1.0,
			"scroll":  2.0,
		},

		// font weights
		"fontWeight": map[string]any{
			"ultralight": -0.8,
			"thin":       -0.6,
			"light":      -0.4,
			"regular":    0.0,
			"medium":     0.23,
			"semibold":   0.3,
			"bold":       0.4,
			"heavy":      0.56,
			"black":      0.62,
		},

		// text attributes
		"textAlignment": map[string]any{
			"left":      0.0,
			"center":    1.0,
			"right":     2.0,
			"justified": 3.0,
			"natural":   4.0,
		},
		"lineBreakMode": map[string]any{
			"byWordWrapping":     0.0,
			"byCharWrapping":     1.0,
			"byClipping":         2.0,
			"byTruncatingHead":   3.0,
			"byTruncatingTail":   4.0,
			"byTruncatingMiddle": 5.0,
		},
		"imageOrientation": map[string]any{
			"up":            0.0,
			"down":          1.0,
			"left":          2.0,
			"right":         3.0,
			"upMirrored":    4.0,
			"downMirrored":  5.0,
			"leftMirrored":  6.0,
			"rightMirrored": 7.0,
		},
	}
}
