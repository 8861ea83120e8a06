package main

import (
	"os"
	"runtime"

	"github.com/richinsley/gomandelbulb/log"
	"github.com/urfave/cli"
)

var logger = log.New("gomandelbulb")

func init() {
	// GLFW and GL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func effectFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "TOML file with effect settings",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "viewport width",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "viewport height",
		},
		cli.StringFlag{
			Name:  "vertex",
			Usage: "vertex shader body (path, URL or builtin:vertex)",
		},
		cli.StringFlag{
			Name:  "fragment",
			Usage: "fragment shader body (path, URL or builtin:mandelbulb)",
		},
		cli.StringFlag{
			Name:  "texture",
			Usage: "iChannel0 texture (path, URL or builtin:bayer)",
		},
		cli.StringFlag{
			Name:  "texture-filter",
			Usage: "iChannel0 filtering: nearest, linear or mipmap",
		},
		cli.StringFlag{
			Name:  "texture-wrap",
			Usage: "iChannel0 wrapping: repeat or clamp",
		},
		cli.BoolFlag{
			Name:  "no-cache",
			Usage: "do not cache downloaded assets",
		},
		cli.BoolFlag{
			Name:  "gles",
			Usage: "translate shaders to ESSL instead of GLSL 4.10",
		},
	}
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "gomandelbulb"
	app.Usage = "fly through a raymarched mandelbulb"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "render the effect in a window",
			Description: `
Open a window and render the effect every display refresh. The camera travels
forward at one unit per second and the cursor position feeds iMouse. Press
Escape or close the window to quit.`,
			Flags:  effectFlags(),
			Action: runEffect,
		},
		{
			Name:  "record",
			Usage: "render the effect to a video file",
			Description: `
Render the effect offscreen at a fixed frame rate and pipe the frames to
ffmpeg. Elapsed time advances exactly 1/fps per frame.`,
			Flags: append(effectFlags(),
				cli.IntFlag{
					Name:  "fps",
					Usage: "frames per second",
				},
				cli.Float64Flag{
					Name:  "duration, d",
					Usage: "seconds to record",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output video file",
				},
				cli.StringFlag{
					Name:  "ffmpeg",
					Usage: "path to the ffmpeg executable",
				},
				cli.StringFlag{
					Name:  "codec",
					Usage: "h264 or hevc",
				},
			),
			Action: recordEffect,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
