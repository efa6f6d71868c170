package drill

import "github.com/preston-bernstein/sebango-service/internal/domain/players"

// scriptedSource replays fixed draws; each value is reduced modulo n, and 0 is returned once exhausted.
type scriptedSource struct {
	draws []int
	calls int
}

func (s *scriptedSource) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	if s.calls >= len(s.draws) {
		s.calls++
		return 0
	}
	v := s.draws[s.calls] % n
	s.calls++
	return v
}

func player(disp string, calc int, role players.Role) players.Player {
	return players.Player{
		Year:       2025,
		Name:       "選手" + disp,
		NameKana:   "せんしゅ" + disp,
		NumberDisp: disp,
		NumberCalc: calc,
		Role:       role,
	}
}

func sampleRoster() []players.Player {
	return []players.Player{
		player("00", 0, players.RoleRoster),
		player("1", 1, players.RoleRoster),
		player("2", 2, players.RoleRoster),
		player("3", 3, players.RoleRoster),
		player("5", 5, players.RoleRoster),
		player("6", 6, players.RoleRoster),
		player("8", 8, players.RoleRoster),
		player("12", 12, players.RoleRoster),
		player("18", 18, players.RoleRoster),
		player("24", 24, players.RoleRoster),
		player("55", 55, players.RoleRoster),
		player("99", 99, players.RoleRoster),
		player("81", 81, players.RoleCoach),
		player("122", 122, players.RoleTraining),
	}
}
