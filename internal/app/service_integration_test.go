package app_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/scoreboard/internal/adapters/loader"
	"github.com/okian/scoreboard/internal/adapters/render"
	app "github.com/okian/scoreboard/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

const melbourneCSV = `#;User;Country;Artist;Song;Notes;Alice;Bob;Zoë
1;u1;Sweden;Loreen;Tattoo;;12;10;8
2;u2;Finland;Käärijä;Cha Cha Cha;;10;12;12
3;u3;Israel;Noa Kirel;Unicorn;;8;DQ;10
4;u4;Norway;Alessandra;Queen of Kings;;;8;
`

func TestIntegration_LoadRunRender(t *testing.T) {
	Convey("Given a semicolon separated contest file", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		in := filepath.Join(dir, "contest.csv")
		So(os.WriteFile(in, []byte(melbourneCSV), 0o600), ShouldBeNil)

		contest, err := loader.New().LoadFile(ctx, in, "Melbourne")
		So(err, ShouldBeNil)
		So(contest.Voters, ShouldResemble, []string{"Alice", "Bob", "Zoë"})

		out := filepath.Join(dir, "Output")
		svc := app.New(app.WithRenderer(render.NewDirWriter(out, render.TextRenderer{}, nil)))

		Convey("When the contest is run", func() {
			res, err := svc.Run(ctx, contest)
			So(err, ShouldBeNil)

			Convey("Then the final order should follow the scoring rules", func() {
				So(res.Summary, ShouldHaveLength, 4)
				So(res.Summary[0].Artist, ShouldEqual, "Käärijä")
				So(res.Summary[0].Points, ShouldEqual, 34)
				So(res.Summary[1].Artist, ShouldEqual, "Loreen")
				So(res.Summary[2].Artist, ShouldEqual, "Alessandra")
				So(res.Summary[3].Artist, ShouldEqual, "Noa Kirel")
				So(res.Summary[3].Points, ShouldEqual, 18)
				So(res.Summary[3].Disqualified, ShouldBeTrue)
			})

			Convey("Then one report per round plus the summary should be written", func() {
				names := make([]string, len(res.Reports))
				for i, p := range res.Reports {
					names[i] = filepath.Base(p)
				}
				So(names, ShouldResemble, []string{
					"1 - Alice.txt",
					"2 - Bob.txt",
					"3 - Zoe.txt",
					"Melbourne - Summary.txt",
				})

				summary, readErr := os.ReadFile(res.Reports[3])
				So(readErr, ShouldBeNil)
				So(strings.HasPrefix(string(summary), "Final Results\nMelbourne Results\n"), ShouldBeTrue)
			})
		})
	})
}
