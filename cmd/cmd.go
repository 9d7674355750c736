// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear the saved session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session state",
				Action: r.AuthStatus,
			},
		},
	}
}

// videosCommand handles public video operations
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "videos",
		Aliases: []string{"v"},
		Usage:   "Browse and watch videos",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the public video feed",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.VideosList,
			},
			{
				Name:  "get",
				Usage: "Show a video with its comments (registers a view)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.VideosGet,
			},
			{
				Name:  "suggest",
				Usage: "List related videos from a category",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "category",
						Usage:    "Category to suggest from",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "exclude",
						Usage: "Video ID to exclude",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.VideosSuggest,
			},
			{
				Name:  "upload",
				Usage: "Publish a new video from metadata",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Video title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Video description",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Video category",
					},
					&cli.StringFlag{
						Name:     "url",
						Usage:    "Video URL",
						Required: true,
					},
				},
				Action: r.VideosUpload,
			},
		},
	}
}

// channelCommand handles the authenticated user's uploads
func channelCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "channel",
		Usage: "Manage your channel's uploads",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your uploads",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ChannelList,
			},
			{
				Name:  "update",
				Usage: "Edit a video's metadata",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "New title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "New description",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "New category",
					},
				},
				Action: r.ChannelUpdate,
			},
			{
				Name:  "delete",
				Usage: "Delete a video and all of its comments",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm the deletion",
					},
				},
				Action: r.ChannelDelete,
			},
		},
	}
}

// commentsCommand handles comment operations on videos
func commentsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "comments",
		Usage: "Add, edit, and delete comments",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Post a comment on a video",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "video-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "text",
						Aliases:  []string{"t"},
						Usage:    "Comment text",
						Required: true,
					},
				},
				Action: r.CommentAdd,
			},
			{
				Name:  "edit",
				Usage: "Edit one of your comments",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "video-id"},
					&cli.StringArg{Name: "comment-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "text",
						Aliases:  []string{"t"},
						Usage:    "Replacement text",
						Required: true,
					},
				},
				Action: r.CommentEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete one of your comments",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "video-id"},
					&cli.StringArg{Name: "comment-id"},
				},
				Action: r.CommentDelete,
			},
		},
	}
}

// profileCommand handles the authenticated user's profile
func profileCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View and edit your profile",
		Commands: []*cli.Command{
			{
				Name:  "me",
				Usage: "Show your profile",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ProfileMe,
			},
			{
				Name:  "update",
				Usage: "Update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "username",
						Usage: "New display name",
					},
					&cli.StringFlag{
						Name:  "email",
						Usage: "New email",
					},
				},
				Action: r.ProfileUpdate,
			},
			{
				Name:  "avatar",
				Usage: "Upload a new avatar image",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.ProfileAvatar,
			},
			{
				Name:  "banner",
				Usage: "Upload a new channel banner image",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.ProfileBanner,
			},
		},
	}
}

// historyCommand handles the local watch history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Local watch history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recently watched videos",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries",
						Value: 25,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Clear the watch history",
				Action: r.HistoryClear,
			},
		},
	}
}

// exportCommand handles channel exports
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export your uploads (metadata + comments) to disk",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format: json, csv, markdown, txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent export workers",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Requests per second",
			},
		},
		Action: r.Export,
	}
}

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}
