package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathtutor/internal/config"
	"github.com/abhisek/mathtutor/internal/drill"
	"github.com/abhisek/mathtutor/internal/i18n"
	"github.com/abhisek/mathtutor/internal/llm"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Practice one drill in the terminal",
	Long:  "Generates a single drill, reads your answer from stdin, and prints the tutor's feedback.",
	RunE:  runDrill,
}

func init() {
	drillCmd.Flags().String("subject", "algebra", "Subject to practice (algebra, geometry, arithmetic, statistics)")
	drillCmd.Flags().String("lang", "en", "Response language (en, fr, he)")
	drillCmd.Flags().Bool("offline", false, "Use the static drill bank instead of the completion provider")
}

func runDrill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	subjectName, _ := cmd.Flags().GetString("subject")
	subject, err := drill.ParseSubject(subjectName)
	if err != nil {
		return err
	}
	langName, _ := cmd.Flags().GetString("lang")
	lang := i18n.Parse(langName)
	offline, _ := cmd.Flags().GetBool("offline")

	var tutor *drill.Tutor
	var d drill.Drill
	if offline {
		var ok bool
		if d, ok = drill.BankDrill(subject); !ok {
			return drill.ErrUnknownSubject
		}
		d.Hint = i18n.T(lang).GenericHint
	} else {
		provider, err := llm.NewProvider(ctx, config.FromEnv().LLM, nil)
		if err != nil {
			return err
		}
		tutor = drill.NewTutor(provider, drill.DefaultConfig())
		if d, err = tutor.GenerateDrill(ctx, subject, lang); err != nil {
			return err
		}
	}

	fmt.Println(d.Question)
	fmt.Printf("(hint: %s)\n", d.Hint)
	fmt.Print("> ")

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return err
	}
	answer = strings.TrimSpace(answer)

	if offline {
		if strings.EqualFold(answer, d.Answer) {
			fmt.Println(i18n.T(lang).Congrats)
		} else {
			fmt.Printf("%s (%s)\n", i18n.T(lang).GenericHint, d.Answer)
		}
		return nil
	}

	v, err := tutor.CheckAnswer(ctx, subject, lang, d, answer, nil)
	if err != nil {
		return err
	}
	fmt.Println(v.Feedback)
	if v.Correct {
		fmt.Println(i18n.T(lang).Congrats)
	}
	return nil
}
