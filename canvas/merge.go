package canvas

type runePair struct{ existing, next rune }

// junctions turns two crossing box strokes into the rune that joins them.
var junctions = map[runePair]rune{
	{'─', '│'}: '┼',
	{'┌', '─'}: '┬', {'┌', '│'}: '├',
	{'┐', '─'}: '┬', {'┐', '│'}: '┤',
	{'└', '─'}: '┴', {'└', '│'}: '├',
	{'┘', '─'}: '┴', {'┘', '│'}: '┤',
	{'├', '─'}: '┼', {'┤', '─'}: '┼',
	{'┬', '│'}: '┼', {'┴', '│'}: '┼',
	{'┬', '┴'}: '┼', {'├', '┤'}: '┼',
	{'─', '┬'}: '┬', {'─', '┴'}: '┴',
	{'│', '├'}: '├', {'│', '┤'}: '┤',
}

// merge combines a new rune with the one already in a cell. Crossing box
// strokes join; anything else overwrites.
func merge(existing, next rune) rune {
	if existing == ' ' || existing == continuation || existing == next {
		return next
	}
	if r, ok := junctions[runePair{existing, next}]; ok {
		return r
	}
	if r, ok := junctions[runePair{next, existing}]; ok {
		return r
	}
	return next
}
