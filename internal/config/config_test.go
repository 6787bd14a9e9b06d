package config_test

import (
	"testing"

	"github.com/okian/scoreboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.OutputDir, convey.ShouldEqual, "Output")
			convey.So(cfg.Format, convey.ShouldEqual, config.FormatText)
			convey.So(cfg.TopN, convey.ShouldEqual, 5)
			convey.So(cfg.DisplayFlags, convey.ShouldBeFalse)
			convey.So(cfg.DisplayCountries, convey.ShouldBeFalse)
			convey.So(cfg.MainColor, convey.ShouldEqual, "#2f292b")
			convey.So(cfg.AccentColor, convey.ShouldEqual, "#009688")
			convey.So(cfg.Delimiter, convey.ShouldBeEmpty)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "scoreboard")
			convey.So(cfg.MetricsSubsystem, convey.ShouldEqual, "contest")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
