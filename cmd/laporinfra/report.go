package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/laporinfra/laporinfra/internal/app"
	"github.com/laporinfra/laporinfra/internal/camera"
	"github.com/laporinfra/laporinfra/internal/enum"
	"github.com/laporinfra/laporinfra/internal/imagegps"
	"github.com/laporinfra/laporinfra/internal/intake"
	"github.com/laporinfra/laporinfra/internal/report"
	"github.com/laporinfra/laporinfra/internal/schema"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/internal/submission"
	"github.com/spf13/cobra"
)

// parseSets turns repeated key=value flags into a field map
func parseSets(sets []string) (map[string]string, error) {
	values := make(map[string]string, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q (want field=value)", s)
		}
		values[k] = v
	}
	return values, nil
}

func readPhotos(paths []string) ([]intake.File, error) {
	files := make([]intake.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read photo: %w", err)
		}
		files = append(files, intake.File{
			Name: filepath.Base(p),
			MIME: imagegps.DetectMIME(data),
			Data: data,
		})
	}
	return files, nil
}

// capture takes one still from a file-backed camera device
func capture(ctx context.Context, rt *runtime, path string) (intake.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return intake.File{}, fmt.Errorf("failed to read capture source: %w", err)
	}
	device, err := camera.NewStillDevice(data)
	if err != nil {
		return intake.File{}, err
	}

	cam := camera.NewSession(device, rt.log)
	defer cam.Close()
	if err := cam.Open(ctx); err != nil {
		return intake.File{}, errors.New(camera.Message(rt.l, err))
	}
	return cam.Capture()
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		sets     []string
		photos   []string
		captures []string
	)
	cmd := &cobra.Command{
		Use:   "report <category>",
		Short: "Submit a report in one category",
		Long: `Submit a report. Category is one of tata-ruang, bangunan, sumber-daya-air,
jalan or jembatan. Fields are given as --set field=value using the option
labels listed by "laporinfra categories".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			category, ok := enum.ParseCategory(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", report.ErrUnknownCategory, args[0])
			}
			values, err := parseSets(sets)
			if err != nil {
				return err
			}

			rt, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if _, err := session.Require(ctx, rt.store, rt.deps.SessionKey); err != nil {
				if errors.Is(err, session.ErrIdentityRequired) {
					return errors.New(rt.l.T("errors.identity_required"))
				}
				return err
			}

			log := rt.log.WithCategory(string(category))
			gallery := intake.NewGallery(app.GalleryConfig(rt.cfg.Upload), log)
			if err := addPhotos(ctx, cmd, rt, gallery, photos, captures); err != nil {
				return err
			}

			detail, err := report.New(category, rt.deps, gallery)
			if err != nil {
				return err
			}
			if err := detail.Set(values); err != nil {
				return fmt.Errorf("invalid report fields: %w", err)
			}

			outcome, err := detail.Submit(ctx)
			for _, w := range outcome.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			if err != nil {
				return submitError(cmd, rt, detail, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), rt.l.T("report.submitted"))
			if outcome.Response != nil && len(outcome.Response.Data) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), string(outcome.Response.Data))
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Report field as field=value (repeatable)")
	cmd.Flags().StringArrayVar(&photos, "photo", nil, "Photo file to attach (repeatable)")
	cmd.Flags().StringArrayVar(&captures, "capture", nil, "Image file to capture through the camera path (repeatable)")
	return cmd
}

func addPhotos(ctx context.Context, cmd *cobra.Command, rt *runtime, gallery *intake.Gallery, photos, captures []string) error {
	if len(photos) > 0 {
		files, err := readPhotos(photos)
		if err != nil {
			return err
		}
		res, err := gallery.Add(ctx, intake.SourceUpload, files)
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w.Message(rt.l))
		}
	}

	for _, path := range captures {
		f, err := capture(ctx, rt, path)
		if err != nil {
			return err
		}
		res, err := gallery.Add(ctx, intake.SourceCamera, []intake.File{f})
		if err != nil {
			if errors.Is(err, intake.ErrCameraDisabled) {
				return errors.New(camera.Message(rt.l, err))
			}
			return err
		}
		for _, w := range res.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w.Message(rt.l))
		}
	}
	return nil
}

func submitError(cmd *cobra.Command, rt *runtime, detail report.Detail, err error) error {
	var fe schema.FieldErrors
	switch {
	case errors.Is(err, session.ErrIdentityRequired):
		return errors.New(rt.l.T("errors.identity_required"))
	case errors.As(err, &fe):
		fmt.Fprintln(cmd.ErrOrStderr(), rt.l.T("errors.validation_failed"))
		printFieldErrors(cmd, fe)
		return errors.New(rt.l.T("errors.validation_failed"))
	case detail.Notice() != "":
		return errors.New(detail.Notice())
	default:
		return errors.New(submission.Message(rt.l, err))
	}
}
