package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/gb2260/internal/logger"
	log "github.com/sirupsen/logrus"
	"regexp"
	"strings"
)

const (
	startCommandName     = "start"
	helpCommandName      = "help"
	codeCommandName      = "code"
	childrenCommandName  = "children"
	provincesCommandName = "provinces"
	revisionsCommandName = "revisions"
	findCommandName      = "find"
	useCommandName       = "use"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

type apiInterface interface {
	Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error)
}

// commandArgs are the positional arguments of a command plus src=/rev= overrides.
type commandArgs struct {
	positional []string
	source     string
	revision   string
}

func parseArgs(args string) commandArgs {
	var result commandArgs
	for _, field := range strings.Fields(args) {
		switch {
		case strings.HasPrefix(field, "src="):
			result.source = strings.TrimPrefix(field, "src=")
		case strings.HasPrefix(field, "rev="):
			result.revision = strings.TrimPrefix(field, "rev=")
		default:
			result.positional = append(result.positional, field)
		}
	}
	return result
}

func (a commandArgs) first() string {
	if len(a.positional) == 0 {
		return ""
	}
	return a.positional[0]
}

func sendWithLogError(api apiInterface, chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, err := api.Send(chattable)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occured while sending message: %v", err)
	}
	return msg, err
}
