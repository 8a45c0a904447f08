package match

// DefaultPlayers is the Tekken 8 character roster recognized on match-history pages
var DefaultPlayers = []string{
	"Alisa", "Asuka", "Azucena", "Bryan", "Claudio", "Devil Jin", "Dragunov", "Feng",
	"Hwoarang", "Jack-8", "Jin", "Jun", "Kazuya", "King", "Kuma", "Lars", "Lee",
	"Leo", "Leroy", "Lili", "Xiaoyu", "Law", "Nina", "Panda", "Paul", "Raven",
	"Reina", "Shaheen", "Steve", "Victor", "Yoshimitsu", "Zafina", "Eddy", "Lidia", "Heihachi",
}

// Roster is an ordered allow-list of player names.
// Report sheets and rows follow roster order, not first-seen order.
type Roster struct {
	names []string
	index map[string]int
}

// NewRoster creates a roster from names, dropping blanks and duplicates
func NewRoster(names []string) Roster {
	r := Roster{index: make(map[string]int, len(names))}
	for _, name := range names {
		name = CleanText(name)
		if name == "" {
			continue
		}
		if _, dup := r.index[name]; dup {
			continue
		}
		r.index[name] = len(r.names)
		r.names = append(r.names, name)
	}
	return r
}

// DefaultRoster returns the built-in roster
func DefaultRoster() Roster {
	return NewRoster(DefaultPlayers)
}

// Contains reports whether name is on the roster (exact match)
func (r Roster) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names returns the roster in order
func (r Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of players on the roster
func (r Roster) Len() int {
	return len(r.names)
}
