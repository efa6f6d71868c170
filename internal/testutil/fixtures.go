package testutil

import "github.com/preston-bernstein/sebango-service/internal/domain/players"

// SampleYear is the season used by SampleRoster.
const SampleYear = 2025

// SamplePlayer returns a player whose names are derived from the display number.
func SamplePlayer(numberDisp string, numberCalc int, role players.Role) players.Player {
	return players.Player{
		Year:        SampleYear,
		Name:        "選手" + numberDisp,
		NameKana:    "せんしゅ" + numberDisp,
		UniformName: "PLAYER" + numberDisp,
		NumberDisp:  numberDisp,
		NumberCalc:  numberCalc,
		Role:        role,
	}
}

// SampleRoster returns a small roster covering "0"/"00", a coach and a training player.
func SampleRoster() []players.Player {
	return []players.Player{
		SamplePlayer("00", 0, players.RoleRoster),
		SamplePlayer("0", 0, players.RoleRoster),
		SamplePlayer("1", 1, players.RoleRoster),
		SamplePlayer("2", 2, players.RoleRoster),
		SamplePlayer("9", 9, players.RoleRoster),
		SamplePlayer("18", 18, players.RoleRoster),
		SamplePlayer("55", 55, players.RoleRoster),
		SamplePlayer("81", 81, players.RoleCoach),
		SamplePlayer("122", 122, players.RoleTraining),
	}
}
