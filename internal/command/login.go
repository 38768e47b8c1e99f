package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in and persist the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := openContext()
			if err != nil {
				return err
			}
			defer ctx.Close()

			email := ""
			if len(args) > 0 {
				email = args[0]
			}
			if email == "" {
				email = promptLine("email: ")
			}
			password := promptPassword("password: ")

			identity, err := ctx.Sessions.SignIn(email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", identity.Email)
			return nil
		},
	}
}

func promptLine(prompt string) string {
	fmt.Fprint(os.Stdout, prompt)
	reader := bufio.NewReader(os.Stdin)
	text, _ := reader.ReadString('\n')
	return strings.TrimSpace(text)
}

// promptPassword reads a line with terminal echo off. When stdin is not
// a terminal (piped input) it falls back to a plain read.
func promptPassword(prompt string) string {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(prompt)
	}
	fmt.Fprint(os.Stdout, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
