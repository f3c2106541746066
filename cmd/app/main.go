package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"threadview/config"
	"threadview/internal/layout"
	"threadview/internal/logging"
	"threadview/internal/thread"
	"threadview/internal/timeutil"
	threadui "threadview/internal/tui/thread"
	"threadview/version"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "threadview",
	Short: "Chat-thread layout engine demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo()
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the thread rendering demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the message database with a sample conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := config.GetDatabasePath()
		if err != nil {
			return err
		}
		store, err := thread.OpenStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := seedConversation(context.Background(), store)
		if err != nil {
			return err
		}
		fmt.Printf("Seeded %d messages into %s\n", n, dbPath)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Get())
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error, silent)")
	rootCmd.AddCommand(demoCmd, seedCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo() error {
	log := logging.New(nil, logLevel)

	stylesPath, err := config.GetStylesFile()
	if err != nil {
		return err
	}
	styles, err := config.LoadStyles(stylesPath)
	if err != nil {
		return err
	}

	dbPath, err := config.GetDatabasePath()
	if err != nil {
		return err
	}
	store, err := thread.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if n, err := store.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		if _, err := seedConversation(ctx, store); err != nil {
			return err
		}
	}

	msgs, err := store.List(ctx)
	if err != nil {
		return err
	}
	src := &thread.SliceSource{Messages: msgs, SelfID: "me"}

	engine, err := layout.New(src, 80,
		layout.WithSizing(styles.Sizing),
		layout.WithPolicy(captionPolicy{}),
		layout.WithLogger(log.Sub("layout")),
	)
	if err != nil {
		return err
	}

	model := newAppModel(src, engine, styles, log)
	program := tea.NewProgram(model)

	watcher, err := config.WatchStyles(stylesPath, log.Sub("config"), func() {
		reloaded, err := config.LoadStyles(stylesPath)
		if err != nil {
			log.Warn().Err(err).Msg("style reload failed")
			return
		}
		program.Send(threadui.StylesReloadedMsg{Styles: reloaded})
	})
	if err != nil {
		log.Warn().Err(err).Msg("style watching unavailable")
	} else {
		defer watcher.Close()
	}

	_, err = program.Run()
	return err
}

// captionPolicy is the demo layout policy: one caption line above incoming
// messages (sender name) and one timestamp line below everything.
type captionPolicy struct {
	layout.NopPolicy
}

func (captionPolicy) TopCaptionHeight(m thread.Message, pos thread.Position, maxWidth int) int {
	if m.Kind == thread.KindSystem {
		return 0
	}
	return 1
}

func (captionPolicy) BottomCaptionHeight(m thread.Message, pos thread.Position, maxWidth int) int {
	if m.SentAt.IsZero() {
		return 0
	}
	return 1
}

func seedConversation(ctx context.Context, store *thread.Store) (int, error) {
	now := time.Now().Add(-30 * time.Minute)
	at := func(offset time.Duration) time.Time { return now.Add(offset) }

	msgs := []thread.Message{
		{SenderID: "system", Kind: thread.KindSystem, Text: timeutil.DayLabel(now, time.Now()), SentAt: at(0)},
		{SenderID: "ada", Kind: thread.KindText, Text: "Hey! Did you see the photos from the weekend?", SentAt: at(1 * time.Minute)},
		{SenderID: "me", Kind: thread.KindText, Text: "Not yet, send them over", SentAt: at(2 * time.Minute), Status: thread.StatusRead},
		{SenderID: "ada", Kind: thread.KindPhoto, SentAt: at(3 * time.Minute),
			Media: &thread.Media{URL: "photo-1.jpg", Width: 1600, Height: 900, Caption: "sunset from the ridge"}},
		{SenderID: "me", Kind: thread.KindEmoji, Text: "😍🔥", SentAt: at(4 * time.Minute), Status: thread.StatusDelivered},
		{SenderID: "ada", Kind: thread.KindLocation, PlaceName: "Ridge trailhead",
			Latitude: 47.62, Longitude: -122.33, SentAt: at(5 * time.Minute)},
		{SenderID: "ada", Kind: thread.KindAudio, AudioDuration: 42 * time.Second, SentAt: at(6 * time.Minute)},
		{SenderID: "me", Kind: thread.KindLinkPreview, LinkURL: "https://example.com/trail",
			LinkTitle: "Ridge loop trail", LinkSummary: "A 7km loop with two viewpoints.",
			SentAt: at(7 * time.Minute), Status: thread.StatusSent},
		{SenderID: "ada", Kind: thread.KindContact, ContactName: "Grace H.", ContactPhone: "+1 555 0100", SentAt: at(8 * time.Minute)},
		{SenderID: "me", Kind: thread.KindText, Text: "Booked for Saturday. Bringing the big lens this time.",
			SentAt: at(9 * time.Minute), Status: thread.StatusSending,
			Attachment: &thread.Media{URL: "lens.jpg", Width: 800, Height: 600}},
	}

	for i := range msgs {
		msgs[i].ID = uuid.NewString()
	}
	if err := store.PutAll(ctx, msgs); err != nil {
		return 0, err
	}
	return len(msgs), nil
}
