package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"escrowmart-web/internal/backend"
	"escrowmart-web/internal/middleware"
	"escrowmart-web/internal/models"
)

// ListDisputes renders the logged-in user's disputes
func (s *Server) ListDisputes(c *gin.Context) {
	disputes, err := s.disputes.ListMine(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    disputes,
	})
}

// ListAllDisputes renders the admin dispute queue
func (s *Server) ListAllDisputes(c *gin.Context) {
	disputes, err := s.disputes.ListAll(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    disputes,
	})
}

// GetDispute renders one dispute's detail screen
func (s *Server) GetDispute(c *gin.Context) {
	dispute, err := s.disputes.Get(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dispute,
	})
}

// formFiles opens every uploaded file under the given multipart field.
// Zero files is valid; evidence and attachments are optional.
func formFiles(c *gin.Context, field string) ([]backend.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var files []backend.File
	for _, header := range form.File[field] {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		files = append(files, backend.File{Name: header.Filename, Content: f})
	}
	return files, nil
}

// CreateDispute raises a dispute against an escrow, forwarding any
// uploaded evidence files
func (s *Server) CreateDispute(c *gin.Context) {
	data := backend.CreateDisputeData{
		EscrowID: c.PostForm("escrowId"),
		Reason:   c.PostForm("reason"),
	}
	if data.EscrowID == "" || data.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Escrow ID and reason are required",
		})
		return
	}

	evidence, err := formFiles(c, "evidence")
	if err != nil && err != http.ErrNotMultipart {
		log.Printf("failed to read evidence uploads: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid evidence upload",
		})
		return
	}
	data.Evidence = evidence

	dispute, err := s.disputes.Create(c.Request.Context(), middleware.SessionID(c), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    dispute,
	})
}

// ResolveDispute closes a dispute with the admin's verdict
func (s *Server) ResolveDispute(c *gin.Context) {
	var data models.ResolveDisputeData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data",
		})
		return
	}

	if data.Status != models.DisputeStatusResolved && data.Status != models.DisputeStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Status must be resolved or rejected",
		})
		return
	}

	dispute, err := s.disputes.Resolve(c.Request.Context(), middleware.SessionID(c), c.Param("id"), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dispute,
	})
}

// ListDisputeComments renders a dispute's comment thread
func (s *Server) ListDisputeComments(c *gin.Context) {
	comments, err := s.disputes.Comments(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    comments,
	})
}

// AddDisputeComment appends a comment, forwarding any uploaded attachments
func (s *Server) AddDisputeComment(c *gin.Context) {
	data := backend.AddCommentData{Content: c.PostForm("content")}
	if data.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Comment content is required",
		})
		return
	}

	attachments, err := formFiles(c, "attachments")
	if err != nil && err != http.ErrNotMultipart {
		log.Printf("failed to read comment attachments: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid attachment upload",
		})
		return
	}
	data.Attachments = attachments

	comment, err := s.disputes.AddComment(c.Request.Context(), middleware.SessionID(c), c.Param("id"), data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    comment,
	})
}
