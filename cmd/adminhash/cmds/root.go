package cmds

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/spf13/cobra"
)

var password string

var rootCmd = &cobra.Command{
	Use:           "adminhash",
	Short:         "Prints the argon2id hash for the admin.password_hash config key",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(_ *cobra.Command, _ []string) error {
		input := password
		if input == "" {
			// No flag: read one line from stdin so the password stays out
			// of shell history.
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			input = strings.TrimRight(line, "\r\n")
		}

		if input == "" {
			return errors.New("password must not be empty")
		}

		hash, err := argon2id.CreateHash(input, argon2id.DefaultParams)
		if err != nil {
			return err
		}

		fmt.Println(hash)
		return nil
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.Flags().StringVar(&password, "password", "", "Password to hash; omit to read from stdin")
}
