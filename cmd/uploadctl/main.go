// Command uploadctl uploads media files for a catalog entity: it requests an
// upload ticket per file, PUTs the bytes straight to the presigned URL, and
// registers each successful upload as a media record.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/cineshelf/service/internal/uploader"
)

type stderrNotifier struct{}

func (stderrNotifier) Success(msg string) { fmt.Fprintln(os.Stderr, msg) }
func (stderrNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, "error: "+msg) }

func main() {
	var (
		server    = flag.String("server", "http://localhost:8080", "catalog API base URL")
		token     = flag.String("token", os.Getenv("CINESHELF_TOKEN"), "bearer token for the API")
		contentID = flag.String("content", "", "content ID the files belong to")
		personID  = flag.String("person", "", "person ID the files belong to")
		category  = flag.String("category", "gallery_image", "media category (poster, gallery_image, trailer, clip, profile_image)")
		gallery   = flag.Bool("gallery", false, "use the bulk gallery limits (10 files, 25MB each)")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: uploadctl [flags] file...")
	}
	if *contentID == "" && *personID == "" {
		log.Fatal("one of -content or -person is required")
	}

	var files []uploader.File
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		files = append(files, uploader.File{
			Name:        filepath.Base(path),
			ContentType: contentType,
			Data:        data,
		})
	}

	flow := uploader.PosterFlow
	if *gallery {
		flow = uploader.GalleryFlow
	}

	ctx := context.Background()
	client := uploader.NewClient(*server, *token)
	orch := uploader.NewOrchestrator(client, flow, stderrNotifier{})
	orch.OnProgress = func(id string, pct int) {
		fmt.Fprintf(os.Stderr, "\r%s %3d%%", id[:8], pct)
	}

	ids := orch.Add(ctx, files)
	orch.Wait()
	fmt.Fprintln(os.Stderr)

	// Registration is a separate, explicit step after the transfer.
	mediaType := "image"
	if *category == "trailer" || *category == "clip" {
		mediaType = "video"
	}

	for _, id := range ids {
		s, ok := orch.Session(id)
		if !ok || s.Status != uploader.StatusSucceeded {
			continue
		}

		records, err := client.RegisterMedia(ctx, uploader.Registration{
			ContentID:  *contentID,
			PersonID:   *personID,
			FileURL:    s.FileURL,
			Type:       mediaType,
			Category:   *category,
			Title:      s.FileName,
			FileSize:   s.Size,
			StorageKey: s.StorageKey,
		})
		if err != nil {
			log.Printf("register %s: %v", s.FileName, err)
			continue
		}
		for _, rec := range records {
			fmt.Printf("%s\t%s\n", rec.ID, rec.FileURL)
		}
	}
}
