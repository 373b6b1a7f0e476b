package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	attendance "github.com/Intechlligent1/AttendanceSystem"
	"github.com/Intechlligent1/AttendanceSystem/cmd/attendance-server/config"
	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

var rootCmd = &cobra.Command{
	Use:   "attctl",
	Short: "attctl can help you manage your attendance service",
	Long:  "attctl manages the roster, operator accounts and report exports of an attendance service installation",
}

var configFile string
var backends model.Backends

func loadConfig() {
	config.Load(configFile)
	log.Println("Loaded Config")
	c := config.Get()

	var err error
	backends, err = config.LoadStorageBackends(c.Storage, c.API.Admin.Argon2idParams)
	if err != nil {
		log.Fatal(err)
	}
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the roster",
}

var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all roster entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		items, err := backends.Roster.List()
		if err != nil {
			return err
		}
		for _, item := range items {
			fmt.Printf("%d\t%s\t%s\n", item.ID, item.BadgeCode, item.Name)
		}
		return nil
	},
}

var rosterAddCmd = &cobra.Command{
	Use:   "add <name> <badge-code>",
	Short: "Add a roster entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		item, err := backends.Roster.Create(
			model.AddIdentity{
				Name:      args[0],
				BadgeCode: args[1],
			},
		)
		if err != nil {
			return err
		}
		fmt.Printf("added roster entry %d (%s)\n", item.ID, item.BadgeCode)
		return nil
	},
}

var rosterRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a roster entry and its attendance events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return err
		}
		return backends.Roster.Delete(uint(id))
	},
}

var userPassword string

var userAddCmd = &cobra.Command{
	Use:   "user-add <username>",
	Short: "Create an operator account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		if userPassword == "" {
			return fmt.Errorf("a password is required; pass it with --password")
		}
		u, err := backends.Users.Create(args[0], userPassword, "")
		if err != nil {
			return err
		}
		fmt.Printf("created user %s\n", u.Username)
		return nil
	},
}

var exportMonth, exportYear int
var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one month of attendance as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		rows, err := attendance.NewMonthlyReport(backends.Ledger).Extract(exportMonth, exportYear)
		if err != nil {
			return err
		}
		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		w := csv.NewWriter(out)
		if err := w.Write([]string{"Name", "Card ID", "Timestamp"}); err != nil {
			return err
		}
		for _, row := range rows {
			record := []string{row.Name, row.BadgeCode, row.Timestamp.UTC().Format(model.TimestampLayout)}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "the config file to use")
	rosterCmd.AddCommand(rosterListCmd, rosterAddCmd, rosterRemoveCmd)
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "password for the new account")
	exportCmd.Flags().IntVar(&exportMonth, "month", 0, "calendar month (1-12)")
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "calendar year")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(rosterCmd, userAddCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
