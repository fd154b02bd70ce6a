package bot

import (
	"context"
	"errors"
	"fmt"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/gb2260/internal/logger"
	"github.com/maxaizer/gb2260/internal/services"
	"github.com/maxaizer/gb2260/pkg/gb2260"
	log "github.com/sirupsen/logrus"
	"strings"
)

type lookupService interface {
	Resolve(source, revision string) (services.Query, error)
	Revisions(source gb2260.Source) []string
	Describe(q services.Query, code string) (services.Description, error)
	Children(q services.Query, code string) ([]gb2260.Division, bool, error)
	Provinces(q services.Query) ([]gb2260.Division, error)
	FindByName(ctx context.Context, q services.Query, name string) ([]gb2260.Division, error)
}

type Options struct {
	DefaultSource         string
	DefaultRevision       string
	MaxRequestsPerSecond  float32
	RequestsBurst         int
	MaxDivisionsInMessage int
}

const defaultRequestsBurst = 3

type Bot struct {
	api          *botApi.BotAPI
	sender       apiInterface
	lookup       lookupService
	data         dataRepository
	settings     *settingsStore
	limiters     *userLimiters
	maxDivisions int
}

func NewBot(token string, lookup lookupService, data dataRepository, options Options) (*Bot, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	err = botApi.SetLogger(log.StandardLogger())
	if err != nil {
		return nil, err
	}

	b, err := newBot(api, lookup, data, options)
	if err != nil {
		return nil, err
	}
	b.api = api
	return b, nil
}

func newBot(sender apiInterface, lookup lookupService, data dataRepository, options Options) (*Bot, error) {

	if lookup == nil {
		return nil, errors.New("lookup service is nil")
	}

	if data == nil {
		return nil, errors.New("data repository is nil")
	}

	if _, err := lookup.Resolve(options.DefaultSource, options.DefaultRevision); err != nil {
		return nil, fmt.Errorf("invalid default registry: %w", err)
	}

	if options.RequestsBurst <= 0 {
		options.RequestsBurst = defaultRequestsBurst
	}

	return &Bot{
		sender:       sender,
		lookup:       lookup,
		data:         data,
		settings:     newSettingsStore(userSettings{Source: options.DefaultSource, Revision: options.DefaultRevision}),
		limiters:     newUserLimiters(options.MaxRequestsPerSecond, options.RequestsBurst),
		maxDivisions: options.MaxDivisionsInMessage,
	}, nil
}

func (b *Bot) Run() {

	err := b.settings.load(context.Background(), b.data)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("Error loading user settings: %v", err)
	}

	updateConfig := botApi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	for update := range updates {

		if update.Message == nil || update.Message.From == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}
}

func (b *Bot) Stop() {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}

	err := b.settings.save(context.Background(), b.data)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("Error saving user settings: %v", err)
	}
}

func (b *Bot) handleMessage(message *botApi.Message) {

	var text string
	if !b.limiters.Allow(message.From.ID) {
		text = "请求过于频繁，请稍后再试。"
	} else if cmd := message.Command(); cmd != "" {
		text = b.handleCommand(message.From.ID, cmd, message.CommandArguments())
	} else {
		text = b.handleInput(message.From.ID, strings.TrimSpace(message.Text))
	}

	if text == "" {
		return
	}

	_, _ = sendWithLogError(b.sender, botApi.NewMessage(message.Chat.ID, text))
}

// handleInput treats a bare six-digit message as /code and anything else as /find.
func (b *Bot) handleInput(userID int64, input string) string {
	if input == "" {
		return ""
	}
	if codePattern.MatchString(input) {
		return b.handleCommand(userID, codeCommandName, input)
	}
	return b.handleCommand(userID, findCommandName, input)
}

func (b *Bot) handleCommand(userID int64, command string, rawArgs string) string {

	args := parseArgs(rawArgs)

	switch command {
	case startCommandName, helpCommandName:
		return helpText
	case useCommandName:
		return b.use(userID, args)
	case revisionsCommandName:
		return b.revisions(userID, args)
	}

	q, err := b.query(userID, args)
	if err != nil {
		return b.errorText(err)
	}

	switch command {
	case codeCommandName:
		return b.code(q, args.first())
	case childrenCommandName:
		return b.children(q, args.first())
	case provincesCommandName:
		provinces, err := b.lookup.Provinces(q)
		if err != nil {
			return b.errorText(err)
		}
		return renderDivisions(fmt.Sprintf("省级区划 [%s]", q), provinces, b.maxDivisions)
	case findCommandName:
		return b.find(q, strings.Join(args.positional, ""))
	default:
		return "未知命令！\n\n" + helpText
	}
}

func (b *Bot) query(userID int64, args commandArgs) (services.Query, error) {
	settings := b.settings.Get(userID)
	if args.source != "" {
		settings.Source = args.source
		settings.Revision = ""
	}
	if args.revision != "" {
		settings.Revision = args.revision
	}
	return b.lookup.Resolve(settings.Source, settings.Revision)
}

func (b *Bot) code(q services.Query, code string) string {
	if !codePattern.MatchString(code) {
		return "请输入六位数字代码，例如 /code 330105"
	}

	description, err := b.lookup.Describe(q, code)
	if err != nil {
		return b.errorText(err)
	}
	return renderDescription(q, description)
}

func (b *Bot) children(q services.Query, code string) string {
	if !codePattern.MatchString(code) {
		return "请输入六位数字代码，例如 /children 330100"
	}

	children, ok, err := b.lookup.Children(q, code)
	if err != nil {
		return b.errorText(err)
	}
	if !ok {
		return fmt.Sprintf("%s 是县级区划，没有下级区划。", code)
	}
	return renderDivisions(fmt.Sprintf("%s 的下级区划 [%s]", code, q), children, b.maxDivisions)
}

func (b *Bot) find(q services.Query, name string) string {
	if name == "" {
		return "请输入名称，例如 /find 拱墅区"
	}

	divisions, err := b.lookup.FindByName(context.Background(), q, name)
	if err != nil {
		return b.errorText(err)
	}
	return renderDivisions(fmt.Sprintf("名称为 %s 的区划 [%s]", name, q), divisions, b.maxDivisions)
}

func (b *Bot) revisions(userID int64, args commandArgs) string {
	source := b.settings.Get(userID).Source
	if args.source != "" {
		source = args.source
	}
	if first := args.first(); first != "" {
		source = first
	}

	src, err := gb2260.ParseSource(source)
	if err != nil {
		return b.errorText(err)
	}
	return fmt.Sprintf("%s 可用版本: %s", src, strings.Join(b.lookup.Revisions(src), ", "))
}

func (b *Bot) use(userID int64, args commandArgs) string {
	if len(args.positional) == 0 && args.source == "" && args.revision == "" {
		b.settings.Reset(userID)
		q, err := b.query(userID, commandArgs{})
		if err != nil {
			return b.errorText(err)
		}
		return fmt.Sprintf("已恢复默认设置 [%s]", q)
	}

	settings := userSettings{Source: args.source, Revision: args.revision}
	if len(args.positional) > 0 {
		settings.Source = args.positional[0]
	}
	if len(args.positional) > 1 {
		settings.Revision = args.positional[1]
	}
	if settings.Source == "" {
		settings.Source = b.settings.Get(userID).Source
	}

	q, err := b.lookup.Resolve(settings.Source, settings.Revision)
	if err != nil {
		return b.errorText(err)
	}

	b.settings.Set(userID, userSettings{Source: q.Source.String(), Revision: settings.Revision})
	return fmt.Sprintf("已切换到 %s", q)
}

func (b *Bot) errorText(err error) string {
	switch {
	case errors.Is(err, gb2260.ErrUnknownSource):
		return "未知来源，可选 gb 或 stats。"
	case errors.Is(err, gb2260.ErrUnknownRevision):
		return "未知版本，使用 /revisions 查看可用版本。"
	case errors.Is(err, gb2260.ErrUnknownCode):
		return "未找到该代码。"
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		return "内部错误！"
	}
}
