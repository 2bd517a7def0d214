/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/skillmatch-io/apiserver/config"
	"github.com/skillmatch-io/apiserver/internal/db"
	"github.com/skillmatch-io/apiserver/internal/store"
	"github.com/skillmatch-io/apiserver/pkg/logger"
	"github.com/skillmatch-io/apiserver/types"
	"github.com/spf13/cobra"
)

var seedChallenges = []types.Challenge{
	{
		Title:           "Print Hello World in Python",
		Description:     `Write a Python program to print "Hello, World!"`,
		Type:            "python",
		Input:           "",
		ExpectedOutput:  "Hello, World!",
		BoilerplateCode: `print("")`,
		LanguageTag:     "python",
	},
	{
		Title:          "Sum of Two Numbers in Java",
		Description:    "Take 2 integers as input and print their sum.",
		Type:           "java",
		Input:          "5 3",
		ExpectedOutput: "8",
		BoilerplateCode: "import java.util.Scanner;\npublic class Main {\n  public static void main(String[] args) {\n" +
			"    Scanner sc = new Scanner(System.in);\n    // your code here\n  }\n}",
		LanguageTag: "java",
	},
	{
		Title:           "Add Two Numbers in C",
		Description:     "Read two integers and print their sum.",
		Type:            "c",
		Input:           "10 20",
		ExpectedOutput:  "30",
		BoilerplateCode: "#include <stdio.h>\nint main() {\n  int a, b;\n  // your code here\n  return 0;\n}",
		LanguageTag:     "c",
	},
	{
		Title:           "Add Two Numbers in C++",
		Description:     "Take two integers and print their sum.",
		Type:            "c++",
		Input:           "4 6",
		ExpectedOutput:  "10",
		BoilerplateCode: "#include <iostream>\nusing namespace std;\nint main() {\n  int a, b;\n  // your code here\n  return 0;\n}",
		LanguageTag:     "c++",
	},
	{
		Title:           "Print Hello in JavaScript",
		Description:     `Print "Hello, JS World!"`,
		Type:            "javascript",
		Input:           "",
		ExpectedOutput:  "Hello, JS World!",
		BoilerplateCode: `console.log("");`,
		LanguageTag:     "javascript",
	},
}

// seedCmd represents the seed command. It replaces the challenge set
// with the built-in practice challenges.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the practice challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logger.New(cfg.Env, cfg.LogLevel)

		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect failed: %w", err)
		}
		defer func() {
			_ = dbConn.Close()
		}()

		if _, err := dbConn.ExecContext(cmd.Context(), "DELETE FROM challenges"); err != nil {
			return fmt.Errorf("clear challenges failed: %w", err)
		}

		repo := store.NewChallengeRepository(dbConn)
		for _, challenge := range seedChallenges {
			if _, err := repo.Create(cmd.Context(), challenge); err != nil {
				return fmt.Errorf("seed %q failed: %w", challenge.Title, err)
			}
		}

		log.Info().Int("count", len(seedChallenges)).Msg("challenges seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
