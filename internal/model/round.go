package model

// RoundType identifies one of the five quiz round formats
type RoundType string

const (
	RoundOpenDeur           RoundType = "open-deur"
	RoundPuzzel             RoundType = "puzzel"
	RoundWoordzoeker        RoundType = "woordzoeker"
	RoundWatWeetU           RoundType = "wat-weet-u"
	RoundCollectiefGeheugen RoundType = "collectief-geheugen"
)

// RoundOrder is the fixed progression order. Round i+1 only unlocks once
// every registered team has completed round i.
var RoundOrder = []RoundType{
	RoundOpenDeur,
	RoundPuzzel,
	RoundWoordzoeker,
	RoundWatWeetU,
	RoundCollectiefGeheugen,
}

// RoundIndex returns the position of rt in RoundOrder, or -1 if unknown
func RoundIndex(rt RoundType) int {
	for i, r := range RoundOrder {
		if r == rt {
			return i
		}
	}
	return -1
}

// ParseRoundType validates a round type string
func ParseRoundType(s string) (RoundType, bool) {
	rt := RoundType(s)
	return rt, RoundIndex(rt) >= 0
}
