package handler

import (
	"github.com/newsgpt/newsgpt-api/internal/core/domain"
)

// --- Request → Service input ---

func toArticleInput(req articleRequest) domain.ArticleInput {
	return domain.ArticleInput{
		Title:      req.Title,
		Body:       req.Body,
		Source:     req.Source,
		Visibility: domain.Visibility(req.Visibility),
	}
}

func toArticlePatch(req articlePatchRequest) domain.ArticlePatch {
	patch := domain.ArticlePatch{
		Title:  req.Title,
		Body:   req.Body,
		Source: req.Source,
	}
	if req.Visibility != nil {
		v := domain.Visibility(*req.Visibility)
		patch.Visibility = &v
	}
	return patch
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

func toArticleResponse(a domain.Article) articleResponse {
	return articleResponse{
		ID:         a.ID,
		Title:      a.Title,
		Body:       a.Body,
		Source:     a.Source,
		Visibility: string(a.Visibility),
		OwnerID:    a.OwnerID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toArticleList(p *domain.Page[domain.Article]) articleListResponse {
	items := make([]articleResponse, 0, len(p.Items))
	for _, a := range p.Items {
		items = append(items, toArticleResponse(a))
	}
	return articleListResponse{Articles: items, Total: p.Total, Page: p.Page, Limit: p.Limit}
}

func toSummaryResponse(s domain.Summary) summaryResponse {
	return summaryResponse{
		ID:           s.ID,
		OriginalText: s.OriginalText,
		SummaryText:  s.SummaryText,
		OwnerID:      s.OwnerID,
		CreatedAt:    s.CreatedAt,
	}
}

func toSummaryList(p *domain.Page[domain.Summary]) summaryListResponse {
	items := make([]summaryResponse, 0, len(p.Items))
	for _, s := range p.Items {
		items = append(items, toSummaryResponse(s))
	}
	return summaryListResponse{Summaries: items, Total: p.Total, Page: p.Page, Limit: p.Limit}
}
