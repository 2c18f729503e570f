package files

import "github.com/gin-gonic/gin"

func toResponse(rec Record) gin.H {
	return gin.H{
		"id":        rec.ID,
		"filename":  rec.FileName,
		"summary":   rec.Summary,
		"sizeBytes": rec.SizeBytes,
		"mimeType":  rec.MimeType,
		"createdAt": rec.CreatedAt,
	}
}
