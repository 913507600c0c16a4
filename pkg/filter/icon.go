package filter

// Icon is a presentation handle for a factor.
type Icon int

const (
	IconNone Icon = iota
	IconHash
	IconEye
	IconSearch
	IconCalendar
	IconBookmark
	IconLink
	IconCheckCircle
	IconCode
)

func (i Icon) String() string {
	names := []string{"", "hash", "eye", "search", "calendar", "bookmark", "link", "check-circle", "code"}
	if int(i) >= 0 && int(i) < len(names) {
		return names[i]
	}
	return ""
}

// IconFor maps a factor to its icon; unknown factors get IconNone.
func IconFor(f Factor) Icon {
	switch f.Kind() {
	case KindTagSearch:
		return IconHash
	case KindVisibility:
		return IconEye
	case KindContentSearch:
		return IconSearch
	case KindDisplayTime:
		return IconCalendar
	case KindPinned:
		return IconBookmark
	case KindProperty:
		sub, _ := f.Sub()
		switch sub {
		case HasLink:
			return IconLink
		case HasTaskList:
			return IconCheckCircle
		case HasCode:
			return IconCode
		}
	}
	return IconNone
}
