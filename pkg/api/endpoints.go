package api

import (
	"context"
	"fmt"

	"github.com/hidalgodigital/pedbot/pkg/kit"
	"github.com/hidalgodigital/pedbot/pkg/municipio"
	"github.com/hidalgodigital/pedbot/pkg/sheets"
	"github.com/hidalgodigital/pedbot/pkg/store"
)

// Shared request/response types used by both HTTP and MCP transports.

type resolveReq struct {
	Text string
}

type resolveResp struct {
	Input     string `json:"input"`
	Found     bool   `json:"found"`
	Exact     bool   `json:"exact"`
	Municipio string `json:"municipio,omitempty"`
	Distance  int    `json:"distance,omitempty"`
	Count     int    `json:"count"`
}

type refreshResp struct {
	Municipios int `json:"municipios"`
	Rows       int `json:"rows"`
}

type snapshotResp struct {
	Counts sheets.Snapshot `json:"counts"`
	Total  int             `json:"total"`
}

type chatReq struct {
	ChatID int64
}

type chatResp struct {
	ChatID    int64  `json:"chat_id"`
	Municipio string `json:"municipio,omitempty"`
}

type chatResetResp struct {
	ChatID int64 `json:"chat_id"`
	Reset  bool  `json:"reset"`
}

func resolveEndpoint(matcher *municipio.Matcher, counts *sheets.Cache) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*resolveReq)
		res := matcher.Resolve(req.Text)

		resp := resolveResp{Input: req.Text}
		if res.Kind == municipio.MatchNone {
			return resp, nil
		}
		resp.Found = true
		resp.Exact = res.Kind == municipio.MatchExact
		resp.Municipio = res.Name
		resp.Distance = res.Distance
		resp.Count = sheets.CountFor(counts.Counts(ctx, false), res.Name)
		return resp, nil
	}
}

func refreshEndpoint(counts *sheets.Cache) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		snap := counts.Counts(ctx, true)
		return refreshResp{Municipios: len(snap), Rows: sheets.Total(snap)}, nil
	}
}

func snapshotEndpoint(counts *sheets.Cache) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		snap := counts.Counts(ctx, false)
		return snapshotResp{Counts: snap, Total: sheets.Total(snap)}, nil
	}
}

func chatGetEndpoint(chats *store.Store) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*chatReq)
		m, err := chats.Get(req.ChatID)
		if err != nil {
			return nil, fmt.Errorf("lookup chat: %w", err)
		}
		return chatResp{ChatID: req.ChatID, Municipio: m}, nil
	}
}

func chatResetEndpoint(chats *store.Store) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*chatReq)
		removed, err := chats.Reset(req.ChatID)
		if err != nil {
			return nil, fmt.Errorf("reset chat: %w", err)
		}
		return chatResetResp{ChatID: req.ChatID, Reset: removed}, nil
	}
}
