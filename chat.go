package rocketchat

import "context"

var postMessageFields = []string{"channel", "text", "alias", "emoji", "avatar", "attachments"}

// Chat wraps the chat.* endpoints.
type Chat struct {
	session *Session
}

// PostMessageOptions is the content of a posted message. Channel addresses
// the target by name ("#general", "@user") and may replace the room
// selector.
type PostMessageOptions struct {
	Channel     string
	Text        string
	Alias       string
	Emoji       string
	Avatar      string
	Attachments []map[string]any
}

func (o PostMessageOptions) params() params {
	p := params{}

	for key, value := range map[string]string{
		"channel": o.Channel,
		"text":    o.Text,
		"alias":   o.Alias,
		"emoji":   o.Emoji,
		"avatar":  o.Avatar,
	} {
		if value != "" {
			p[key] = value
		}
	}

	if o.Attachments != nil {
		p["attachments"] = o.Attachments
	}

	return p
}

// Delete deletes a message. asUser, when set, deletes it as the user who
// sent it.
func (c *Chat) Delete(ctx context.Context, room RoomSelector, msgID string, asUser *bool) (bool, error) {
	body := roomParams(room).merge(params{"msgId": msgID})
	if asUser != nil {
		body["asUser"] = *asUser
	}

	return c.session.postOK(ctx, "chat.delete", body)
}

func (c *Chat) GetMessage(ctx context.Context, msgID string) (*Message, error) {
	payload, err := c.session.get(ctx, "chat.getMessage", params{"msgId": msgID})
	if err != nil {
		return nil, err
	}

	return NewMessage(payload.Object("message")), nil
}

func (c *Chat) PostMessage(ctx context.Context, room RoomSelector, opts PostMessageOptions) (*Message, error) {
	body := roomParams(room).merge(optionParams(opts.params(), postMessageFields...))

	payload, err := c.session.post(ctx, "chat.postMessage", body)
	if err != nil {
		return nil, err
	}

	return NewMessage(payload.Object("message")), nil
}

// Update replaces the text of a message.
func (c *Chat) Update(ctx context.Context, room RoomSelector, msgID, text string) (*Message, error) {
	body := roomParams(room).merge(params{"msgId": msgID, "text": text})

	payload, err := c.session.post(ctx, "chat.update", body)
	if err != nil {
		return nil, err
	}

	return NewMessage(payload.Object("message")), nil
}
