package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/junsooki/photoframe/internal/logging"
	"github.com/junsooki/photoframe/internal/photoserver"
)

func main() {
	dir := flag.String("dir", ".", "Directory of photos to serve")
	addr := flag.String("addr", ":5001", "Listen address")
	flag.Parse()

	logger := logging.New(os.Stdout, log.InfoLevel)
	logger.Info("photo server starting", "dir", *dir, "addr", *addr, "path", photoserver.RandomPhotoPath)

	s := photoserver.NewServer(*dir, logger)
	if err := s.Router().Run(*addr); err != nil {
		logger.Fatal("serve", "err", err)
	}
}
