package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/laporinfra/laporinfra/internal/app"
	"github.com/laporinfra/laporinfra/internal/geo"
	"github.com/laporinfra/laporinfra/internal/report"
	"github.com/laporinfra/laporinfra/internal/schema"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD or RFC3339)", s)
}

func newIdentityCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage the stored reporter identity",
	}
	cmd.AddCommand(
		newIdentitySetCmd(opts),
		newIdentityShowCmd(opts),
		newIdentityClearCmd(opts),
	)
	return cmd
}

func newIdentitySetCmd(opts *rootOptions) *cobra.Command {
	var (
		fields schema.Identity
		date   string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the reporter identity used by every report",
		Long: `Save the reporter identity. Flags that are not given keep their stored
values. Without --lat and --lon the configured default location is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			step := report.NewIdentityStep(rt.deps)
			if err := step.Load(ctx); err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				step.Fields.ReporterName = fields.ReporterName
			}
			if flags.Changed("phone") {
				step.Fields.PhoneNumber = fields.PhoneNumber
			}
			if flags.Changed("role") {
				step.Fields.Role = fields.Role
			}
			if flags.Changed("village") {
				step.Fields.Village = fields.Village
			}
			if flags.Changed("lat") {
				step.Fields.Latitude = fields.Latitude
			}
			if flags.Changed("lon") {
				step.Fields.Longitude = fields.Longitude
			}
			if date != "" {
				t, err := parseDate(date)
				if err != nil {
					return err
				}
				step.Fields.ReportDatetime = t
			}

			if step.Fields.Latitude == "" && step.Fields.Longitude == "" {
				center := orb.Point{rt.cfg.Geo.DefaultLongitude, rt.cfg.Geo.DefaultLatitude}
				helper := app.GeoHelper(rt.cfg.Geo, geo.StaticLocator{Point: center})
				if err := step.Locate(ctx, helper); err != nil {
					var gerr *geo.Error
					if errors.As(err, &gerr) {
						return errors.New(gerr.Message(rt.l))
					}
					return err
				}
			}

			if _, err := step.Save(ctx); err != nil {
				var fe schema.FieldErrors
				if errors.As(err, &fe) {
					fmt.Fprintln(cmd.ErrOrStderr(), rt.l.T("errors.validation_failed"))
					printFieldErrors(cmd, fe)
					return errors.New(rt.l.T("errors.validation_failed"))
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), rt.l.T("report.identity_saved"))
			return nil
		},
	}
	cmd.Flags().StringVar(&fields.ReporterName, "name", "", "Reporter name")
	cmd.Flags().StringVar(&fields.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&fields.Role, "role", "", "Reporter role label")
	cmd.Flags().StringVar(&fields.Village, "village", "", "Village")
	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD or RFC3339, default now)")
	cmd.Flags().StringVar(&fields.Latitude, "lat", "", "Latitude")
	cmd.Flags().StringVar(&fields.Longitude, "lon", "", "Longitude")
	return cmd
}

func newIdentityShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored reporter identity as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			r, err := rt.store.Load(cmd.Context(), rt.deps.SessionKey)
			if errors.Is(err, session.ErrNotFound) {
				return errors.New(rt.l.T("errors.identity_required"))
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		},
	}
}

func newIdentityClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored reporter identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			return report.NewIdentityStep(rt.deps).Clear(cmd.Context())
		},
	}
}
