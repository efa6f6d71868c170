package fixture

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
	"github.com/preston-bernstein/sebango-service/internal/roster"
)

// Year is the only season the fixture provides.
const Year = 2025

// Source returns a static roster useful for local runs and bootstrapping.
type Source struct{}

// New creates a fixture source.
func New() *Source {
	return &Source{}
}

func (s *Source) Name() string { return "fixture" }

// LoadPlayers returns the deterministic roster for Year.
func (s *Source) LoadPlayers(ctx context.Context, year int) ([]players.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if year != Year {
		return nil, fmt.Errorf("%w: %d", roster.ErrYearNotFound, year)
	}
	return Players(), nil
}

// Years reports the fixture season.
func (s *Source) Years(ctx context.Context) ([]int, error) {
	_ = ctx
	return []int{Year}, nil
}

// Players returns a fresh copy of the fixture roster.
func Players() []players.Player {
	p := func(name, kana, uniform, disp string, calc int, role players.Role) players.Player {
		return players.Player{
			Year:        Year,
			Name:        name,
			NameKana:    kana,
			UniformName: uniform,
			NumberDisp:  disp,
			NumberCalc:  calc,
			Role:        role,
		}
	}
	return []players.Player{
		p("青木一郎", "あおきいちろう", "AOKI", "00", 0, players.RoleRoster),
		p("石田二郎", "いしだじろう", "ISHIDA", "0", 0, players.RoleRoster),
		p("上野大樹", "うえのだいき", "UENO", "1", 1, players.RoleRoster),
		p("遠藤翔太", "えんどうしょうた", "ENDO", "2", 2, players.RoleRoster),
		p("岡田健", "おかだけん", "OKADA", "3", 3, players.RoleRoster),
		p("加藤蓮", "かとうれん", "KATO", "4", 4, players.RoleRoster),
		p("木村悠真", "きむらゆうま", "KIMURA", "6", 6, players.RoleRoster),
		p("工藤陸", "くどうりく", "KUDO", "7", 7, players.RoleRoster),
		p("小林颯", "こばやしはやて", "KOBAYASHI", "8", 8, players.RoleRoster),
		p("佐藤大和", "さとうやまと", "SATO", "9", 9, players.RoleRoster),
		p("清水湊", "しみずみなと", "SHIMIZU", "11", 11, players.RoleRoster),
		p("鈴木蒼", "すずきあおい", "SUZUKI", "12", 12, players.RoleRoster),
		p("関口樹", "せきぐちいつき", "SEKIGUCHI", "14", 14, players.RoleRoster),
		p("高橋陽翔", "たかはしはると", "TAKAHASHI", "18", 18, players.RoleRoster),
		p("田中朝陽", "たなかあさひ", "TANAKA", "20", 20, players.RoleRoster),
		p("中村律", "なかむらりつ", "NAKAMURA", "24", 24, players.RoleRoster),
		p("西村新", "にしむらあらた", "NISHIMURA", "31", 31, players.RoleRoster),
		p("野口奏", "のぐちかなで", "NOGUCHI", "36", 36, players.RoleRoster),
		p("橋本晴", "はしもとはる", "HASHIMOTO", "44", 44, players.RoleRoster),
		p("福田暖", "ふくだだん", "FUKUDA", "50", 50, players.RoleRoster),
		p("松本岳", "まつもとがく", "MATSUMOTO", "55", 55, players.RoleRoster),
		p("森田凪", "もりたなぎ", "MORITA", "99", 99, players.RoleRoster),
		p("山本監督", "やまもとかんとく", "YAMAMOTO", "77", 77, players.RoleCoach),
		p("吉田コーチ", "よしだこーち", "YOSHIDA", "81", 81, players.RoleCoach),
		p("渡辺育", "わたなべいく", "WATANABE", "122", 122, players.RoleTraining),
		p("和田伸", "わだしん", "WADA", "205", 205, players.RoleTraining),
	}
}
