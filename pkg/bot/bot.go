package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hidalgodigital/pedbot/pkg/municipio"
	"github.com/hidalgodigital/pedbot/pkg/sheets"
	"github.com/hidalgodigital/pedbot/pkg/store"
	"github.com/hidalgodigital/pedbot/pkg/telegram"
)

// Sender delivers outbound messages; *telegram.Client satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, req telegram.SendMessageRequest) (*telegram.Message, error)
}

// Bot wires the matcher, the count cache and the registration store
// into the chat conversation.
type Bot struct {
	matcher   *municipio.Matcher
	counts    *sheets.Cache
	chats     *store.Store
	sender    Sender
	logger    *slog.Logger
	autoApply bool
}

// New builds the bot. When autoApply is false (the default policy),
// fuzzy suggestions ask the user to confirm by re-sending the
// suggested name instead of registering directly.
func New(matcher *municipio.Matcher, counts *sheets.Cache, chats *store.Store, sender Sender, logger *slog.Logger, autoApply bool) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		matcher:   matcher,
		counts:    counts,
		chats:     chats,
		sender:    sender,
		logger:    logger,
		autoApply: autoApply,
	}
}

// HandleUpdate processes one webhook update. It never returns an
// error: anything that goes wrong is logged and answered with a
// best-effort reply, since bouncing errors back to Telegram only
// triggers redelivery.
func (b *Bot) HandleUpdate(ctx context.Context, u *telegram.Update) {
	if u == nil || u.Message == nil || u.Message.Chat.ID == 0 {
		return
	}
	chatID := u.Message.Chat.ID
	text := u.Message.Text

	switch DetectIntent(text) {
	case IntentStart:
		b.handleStart(ctx, chatID)
	case IntentHelp:
		b.reply(ctx, chatID,
			"Comandos:\n"+
				"• /start  • /ayuda  • /info\n"+
				"• /refrescar  • /id  • /reset\n"+
				"• municipio <Nombre>  (ej. *municipio Tulancingo*)\n"+
				"Importante: Podrás consultar *solo el primer municipio* que elijas en este chat.")
	case IntentInfo:
		b.reply(ctx, chatID, "Consulto el conteo por municipio desde una hoja de cálculo publicada.")
	case IntentRefresh:
		b.counts.Counts(ctx, true)
		b.reply(ctx, chatID, "🔄 Cache actualizado.")
	case IntentID:
		b.reply(ctx, chatID, fmt.Sprintf("Tu chat_id es: %d", chatID))
	case IntentReset:
		b.handleReset(ctx, chatID)
	case IntentMunicipio:
		b.handleMunicipio(ctx, chatID, text)
	case IntentGreeting:
		b.reply(ctx, chatID, "¡Hola! Escríbeme *municipio Pachuca* (por ejemplo) para ver su conteo.")
	default:
		b.reply(ctx, chatID, "No entendí tu mensaje 🤔. Escribe *ayuda* para ver opciones.")
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	total := sheets.Total(b.counts.Counts(ctx, false))
	b.reply(ctx, chatID,
		"¡Hola! Soy tu asistente del Plan Estatal de Desarrollo.\n"+
			"Escríbeme *municipio Pachuca* (por ejemplo) para ver su conteo.\n"+
			fmt.Sprintf("Registros totales actuales: %d", total))
}

func (b *Bot) handleReset(ctx context.Context, chatID int64) {
	removed, err := b.chats.Reset(chatID)
	if err != nil {
		b.logger.Error("reset registration", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, "No pude restablecer tu municipio, intenta de nuevo.")
		return
	}
	if removed {
		b.reply(ctx, chatID, "✅ Se restableció tu municipio. Ahora envía: *municipio Pachuca*")
	} else {
		b.reply(ctx, chatID, "No tenías municipio registrado. Envía: *municipio Pachuca*")
	}
}

func (b *Bot) handleMunicipio(ctx context.Context, chatID int64, text string) {
	registered, err := b.chats.Get(chatID)
	if err != nil {
		b.logger.Error("lookup registration", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, "Tuve un problema consultando tu registro, intenta de nuevo.")
		return
	}

	snapshot := b.counts.Counts(ctx, false)

	if registered != "" {
		n := sheets.CountFor(snapshot, registered)
		b.reply(ctx, chatID, fmt.Sprintf(
			"Tu municipio registrado es *%s* y lleva %d registro(s).\n"+
				"Si crees que es un error, usa /reset o solicita a un administrador que lo restablezca.",
			registered, n))
		return
	}

	name := ExtractMunicipio(text)
	if name == "" {
		b.reply(ctx, chatID, "Escríbeme así: *municipio Pachuca*")
		return
	}

	res := b.matcher.Resolve(name)
	switch {
	case res.Kind == municipio.MatchNone:
		b.reply(ctx, chatID, fmt.Sprintf(
			"No reconozco el municipio *%s*. Revisa la escritura e intenta de nuevo.", name))

	case res.Kind == municipio.MatchSuggested && !b.autoApply:
		b.reply(ctx, chatID, fmt.Sprintf(
			"¿Quisiste decir *%s*? Envía *municipio %s* para confirmarlo.", res.Name, res.Name))

	default:
		// Exact match, or an accepted suggestion under auto-apply.
		stored, err := b.chats.Register(chatID, res.Name)
		if err != nil {
			b.logger.Error("register municipio", "chat_id", chatID, "municipio", res.Name, "error", err)
			b.reply(ctx, chatID, "No pude registrar tu municipio, intenta de nuevo.")
			return
		}
		n := sheets.CountFor(snapshot, stored)
		b.reply(ctx, chatID, fmt.Sprintf(
			"Listo ✅. Registré *%s* para este chat.\nActualmente lleva %d registro(s).", stored, n))
	}
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if _, err := b.sender.SendMessage(ctx, telegram.SendMessageRequest{ChatID: chatID, Text: text}); err != nil {
		b.logger.Warn("send message failed", "chat_id", chatID, "error", err)
	}
}
