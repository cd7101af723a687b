package chat

import (
	chat "google.golang.org/api/chat/v1"
)

// SpaceInfo represents a Google Chat space
type SpaceInfo struct {
	Name        string // "spaces/AAAA1234"
	DisplayName string
	SpaceType   string // "SPACE", "GROUP_CHAT", "DIRECT_MESSAGE"
	Description string
}

// MessageInfo represents a message in a space
type MessageInfo struct {
	Name       string // "spaces/AAAA1234/messages/BBBB5678"
	Text       string
	CreateTime string
	Thread     string
	Sender     SenderInfo
}

// SenderInfo identifies the user who sent a message
type SenderInfo struct {
	Name        string // "users/123456789"
	DisplayName string
	Type        string // "HUMAN" or "BOT"
}

// MemberInfo represents a membership in a space
type MemberInfo struct {
	Name       string // "spaces/AAAA1234/members/123456789"
	Role       string
	State      string
	CreateTime string
	Member     SenderInfo
}

// toSpaceInfo converts a Chat space to a SpaceInfo
func toSpaceInfo(space *chat.Space) SpaceInfo {
	if space == nil {
		return SpaceInfo{}
	}

	info := SpaceInfo{
		Name:        space.Name,
		DisplayName: space.DisplayName,
		SpaceType:   space.SpaceType,
	}
	if space.SpaceDetails != nil {
		info.Description = space.SpaceDetails.Description
	}
	return info
}

// toMessageInfo converts a Chat message to a MessageInfo
func toMessageInfo(msg *chat.Message) MessageInfo {
	if msg == nil {
		return MessageInfo{}
	}

	info := MessageInfo{
		Name:       msg.Name,
		Text:       msg.Text,
		CreateTime: msg.CreateTime,
	}
	if msg.Thread != nil {
		info.Thread = msg.Thread.Name
	}
	if msg.Sender != nil {
		info.Sender = SenderInfo{
			Name:        msg.Sender.Name,
			DisplayName: msg.Sender.DisplayName,
			Type:        msg.Sender.Type,
		}
	}
	return info
}

// toMemberInfo converts a Chat membership to a MemberInfo
func toMemberInfo(m *chat.Membership) MemberInfo {
	if m == nil {
		return MemberInfo{}
	}

	info := MemberInfo{
		Name:       m.Name,
		Role:       m.Role,
		State:      m.State,
		CreateTime: m.CreateTime,
	}
	if m.Member != nil {
		info.Member = SenderInfo{
			Name:        m.Member.Name,
			DisplayName: m.Member.DisplayName,
			Type:        m.Member.Type,
		}
	}
	return info
}
