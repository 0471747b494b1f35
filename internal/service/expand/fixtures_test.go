package expand_test

import (
	"nmjl-service/internal/card"
)

func group(id string, ct card.ConstraintType, values string, role card.SuitRole) card.Group {
	return card.Group{
		ID:            id,
		Type:          ct,
		Values:        card.ParseDescriptor(values),
		Role:          role,
		JokersAllowed: ct != card.ConstraintSingle && ct != card.ConstraintPair,
	}
}

func yearTemplate() card.Template {
	return card.Template{
		Section:        "2025",
		Line:           1,
		PatternID:      1,
		Key:            "2025-1",
		DisplayPattern: "222 0000 222 5555",
		Description:    "Any 2 suits",
		Points:         25,
		Groups: []card.Group{
			group("g1", card.ConstraintPung, "2", card.RoleAny),
			group("g2", card.ConstraintKong, "0", card.RoleNone),
			group("g3", card.ConstraintPung, "2", card.RoleSecond),
			group("g4", card.ConstraintKong, "5", "same_as:g3"),
		},
	}
}

func windsTemplate() card.Template {
	return card.Template{
		Section:        "WINDS - DRAGONS",
		Line:           2,
		PatternID:      2,
		Key:            "winds-2",
		DisplayPattern: "EEEE NNNN RRR GGG",
		Groups: []card.Group{
			group("g1", card.ConstraintKong, "east,west", card.RoleNone),
			group("g2", card.ConstraintKong, "north,south", card.RoleNone),
			group("g3", card.ConstraintPung, "red", card.RoleNone),
			group("g4", card.ConstraintPung, "green", card.RoleNone),
		},
	}
}

func runTemplate() card.Template {
	return card.Template{
		Section:        "CONSECUTIVE RUN",
		Line:           3,
		PatternID:      3,
		Key:            "run-3",
		DisplayPattern: "123 456 789 NNNN R",
		Groups: []card.Group{
			group("g1", card.ConstraintSequence, "1,2,3", card.RoleAny),
			group("g2", card.ConstraintSequence, "4,5,6", card.RoleSecond),
			group("g3", card.ConstraintSequence, "7,8,9", card.RoleThird),
			group("g4", card.ConstraintKong, "north", card.RoleNone),
			group("g5", card.ConstraintSingle, "red", card.RoleNone),
		},
	}
}

func wideTemplate() card.Template {
	return card.Template{
		Section:        "ODDS AND EVENS",
		Line:           4,
		PatternID:      4,
		Key:            "wide-4",
		DisplayPattern: "11 222 3333 4444 F",
		Groups: []card.Group{
			group("g1", card.ConstraintPair, "1,3,5", card.RoleAny),
			group("g2", card.ConstraintPung, "2,4,6", card.RoleSecond),
			group("g3", card.ConstraintKong, "1,3,5,7,9", card.RoleThird),
			group("g4", card.ConstraintKong, "flower", card.RoleNone),
			group("g5", card.ConstraintSingle, "red", card.RoleNone),
		},
	}
}
