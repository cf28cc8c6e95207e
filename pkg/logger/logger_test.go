package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/lineup/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	convey.Convey("Given a logger writing JSON into a buffer", t, func() {
		var buf bytes.Buffer
		convey.So(logger.Init(logger.WithWriter(&buf), logger.WithJSON()), convey.ShouldBeNil)
		defer func() { _ = logger.Sync() }()
		ctx := context.Background()

		convey.Convey("When logging with fields", func() {
			logger.Named("assign").Info(ctx, "assigned",
				logger.String("formation", "4-4-2"),
				logger.Int("matched", 11),
				logger.Bool("fallback", false),
				logger.Duration("took", time.Millisecond),
			)

			convey.Convey("Then one structured line carries every field", func() {
				var line map[string]any
				convey.So(json.Unmarshal(buf.Bytes(), &line), convey.ShouldBeNil)
				convey.So(line["msg"], convey.ShouldEqual, "assigned")
				convey.So(line["component"], convey.ShouldEqual, "assign")
				convey.So(line["formation"], convey.ShouldEqual, "4-4-2")
				convey.So(line["matched"], convey.ShouldEqual, 11.0)
				convey.So(line["fallback"], convey.ShouldEqual, false)
				convey.So(line["source"], convey.ShouldContainSubstring, "logger_test.go")
			})
		})

		convey.Convey("When the level is raised", func() {
			convey.So(logger.SetLevelString("warn"), convey.ShouldBeNil)
			logger.Get().Info(ctx, "hidden")
			logger.Get().Error(ctx, "shown", logger.Error(errors.New("boom")))

			convey.Convey("Then lower levels are dropped", func() {
				out := buf.String()
				convey.So(strings.Contains(out, "hidden"), convey.ShouldBeFalse)
				convey.So(out, convey.ShouldContainSubstring, "boom")
			})
		})

		convey.Convey("When an unknown level is set", func() {
			convey.Convey("Then it is rejected", func() {
				convey.So(logger.SetLevelString("loud"), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerNop(t *testing.T) {
	convey.Convey("Given a no-op logger", t, func() {
		l := logger.Nop()

		convey.Convey("Then logging never panics", func() {
			convey.So(func() { l.Named("x").Error(context.Background(), "ignored") }, convey.ShouldNotPanic)
		})
	})
}

func TestLoggerFile(t *testing.T) {
	convey.Convey("Given a logger writing to a rotating file", t, func() {
		path := filepath.Join(t.TempDir(), "logs", "lineup.log")
		convey.So(logger.Init(logger.WithFile(path, logger.RotateConfig{MaxSizeMB: 1, MaxBackups: 1})), convey.ShouldBeNil)

		logger.Get().Info(context.Background(), "to file", logger.String("k", "v"))

		convey.Convey("Then the line lands in the file", func() {
			raw, err := os.ReadFile(path)
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(raw), convey.ShouldContainSubstring, "to file")
		})
	})
}
