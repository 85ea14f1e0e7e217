package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SodiqOgundairo/condolence-backend/internal/pkg/recorder"
)

var (
	voiceName     string
	voiceFile     string
	voicePrivate  bool
	recordCommand string
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Send a voice tribute",
	Long: `Send a voice tribute. With --file an existing recording is uploaded;
without it the microphone is captured until you press Enter.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := apiClient()

		if voiceFile != "" {
			clip, err := os.ReadFile(voiceFile)
			if err != nil {
				return fmt.Errorf("read recording: %w", err)
			}
			res, err := client.SendVoice(cmd.Context(), voiceName, voiceFile, clip, !voicePrivate)
			if err != nil {
				return err
			}
			fmt.Printf("voice tribute %s submitted\n", res.ID)
			return nil
		}

		session := recorder.NewSession(recorder.NewExecCapture(recordCommand, "-q", "-f", "S16_LE", "-r", "16000", "-t", "wav", "-"))
		if err := session.Start(cmd.Context()); err != nil {
			return err
		}

		fmt.Println("recording... press Enter to stop")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')

		if err := session.Stop(cmd.Context()); err != nil {
			return err
		}
		clip, err := session.Clip()
		if err != nil {
			return err
		}

		res, err := client.SendVoice(cmd.Context(), voiceName, "recording.wav", clip, !voicePrivate)
		if err != nil {
			return err
		}
		fmt.Printf("voice tribute %s submitted\n", res.ID)
		return nil
	},
}

func init() {
	voiceCmd.Flags().StringVarP(&voiceName, "name", "n", "", "your name")
	voiceCmd.Flags().StringVarP(&voiceFile, "file", "f", "", "upload an existing audio file instead of recording")
	voiceCmd.Flags().BoolVar(&voicePrivate, "private", false, "keep the tribute off the public wall")
	voiceCmd.Flags().StringVar(&recordCommand, "record-command", "arecord", "external command used to capture audio")
	_ = voiceCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(voiceCmd)
}
