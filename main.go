// ABOUTME: Entry point for the Toneloop player
// ABOUTME: Parses CLI flags and starts the application
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/toneloop/toneloop-go/internal/app"
	"github.com/toneloop/toneloop-go/internal/audio"
	"github.com/toneloop/toneloop-go/internal/player"
	"github.com/toneloop/toneloop-go/internal/sink"
	"github.com/toneloop/toneloop-go/internal/version"
)

var (
	sinkName   = flag.String("sink", "oto", "Audio backend: oto, portaudio, or none")
	rate       = flag.Int("rate", audio.NominalRate, "Sample rate to request from the device")
	logFile    = flag.String("log-file", "toneloop.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
	autoPlay   = flag.Bool("play", false, "Start playing immediately")
)

func main() {
	flag.Parse()

	// Determine if we should use TUI or streaming logs
	useTUI := !(*noTUI || *streamLogs)

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	log.Printf("Starting %s %s", version.Product, version.Version)

	factory, err := sinkFactory(*sinkName, *rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !useTUI && !*autoPlay {
		log.Printf("No TUI and no -play: nothing will trigger playback")
	}

	a := app.New(app.Config{
		SinkName: *sinkName,
		Factory:  factory,
		Program:  audio.DefaultProgram(),
		UseTUI:   useTUI,
		AutoPlay: *autoPlay,
	})

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("Shutdown signal received")
		a.Stop()
	}()

	if err := a.Run(); err != nil {
		log.Fatalf("Player failed: %v", err)
	}

	log.Printf("Player stopped")
}

// sinkFactory maps the -sink flag to a backend constructor
func sinkFactory(name string, rate int) (player.SinkFactory, error) {
	switch name {
	case "oto":
		return func(notify sink.Notify) (sink.Sink, error) {
			return sink.NewOto(rate, notify)
		}, nil
	case "portaudio":
		return func(notify sink.Notify) (sink.Sink, error) {
			return sink.NewPortAudio(rate, notify)
		}, nil
	case "none":
		return func(notify sink.Notify) (sink.Sink, error) {
			return sink.NewMemory(rate, notify), nil
		}, nil
	}
	return nil, fmt.Errorf("unknown sink backend %q (want oto, portaudio, or none)", name)
}
