package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"typedsign/internal/common"
	"typedsign/internal/eip712"
	"typedsign/internal/manager"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/schema"
)

func (s *APIServer) RegisterRoutes() http.Handler {
	router := gin.New()

	// Register routes
	router.GET("/", s.DefaultHandler) // test handler

	router.POST("/schemas/v1.0/register", s.RegisterSchema)
	router.GET("/schemas/v1.0/type/:schemaId", s.GetTypeString)
	router.POST("/schemas/v1.0/digest/:schemaId", s.ComputeDigest)
	router.GET("/schemas/v1.0/signatures/:schemaId", s.GetSignatures)
	router.GET("/domain/v1.0/separator", s.GetDomainSeparator)

	// Wrap the router with CORS middleware
	return s.corsMiddleware(router)
}

func (s *APIServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace "*" with specific origins if needed
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Allow-Credentials", "false") // Set to "true" if credentials are required

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Proceed with the next handler
		next.ServeHTTP(w, r)
	})
}

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// RegisterSchema validates a submitted schema eagerly and opens a session
// for it. Definition errors (unknown types, cycles, empty domains) surface
// here, before any digest is requested.
func (s *APIServer) RegisterSchema(c *gin.Context) {
	body := c.Request.Body
	defer body.Close()

	submission := common.SchemaSubmission{}
	if err := json.NewDecoder(body).Decode(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schema submission"})
		s.logger.Printf("Failed to decode schema submission: %v", err)
		return
	}

	registry, err := eip712.NewRegistry(submission.Types)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		s.logger.Printf("Schema rejected: %v", err)
		return
	}

	encodeType, err := registry.EncodeType(submission.PrimaryType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	typeHash, err := registry.TypeHash(submission.PrimaryType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The domain must hold up on its own; a schema bound to an empty
	// domain would never produce an acceptable digest.
	if _, err := submission.Domain.Separator(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		s.logger.Printf("Domain rejected: %v", err)
		return
	}

	entry := &manager.SchemaEntry{
		SchemaID:    uuid.New(),
		PrimaryType: submission.PrimaryType,
		Registry:    registry,
		Domain:      &submission.Domain,
		Signatures: &common.SignatureList{
			Signatures: make([]common.SignatureRecord, 0),
		},
		SigMutex: new(sync.Mutex),
	}

	if err := s.manager.SetSchema(entry); err != nil {
		s.logger.Printf("Error storing schema session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store schema"})
		return
	}
	s.manager.HandleSchemaEvent(entry)

	s.logger.Printf("Registered schema %s with primary type %s", entry.SchemaID, entry.PrimaryType)

	c.JSON(http.StatusOK, common.SchemaRegistered{
		SchemaID:    entry.SchemaID,
		PrimaryType: entry.PrimaryType,
		EncodeType:  encodeType,
		TypeHash:    typeHash.Hex(),
	})
}

// GetTypeString exposes the canonical encodeType string and typeHash of a
// registered schema for external verification.
func (s *APIServer) GetTypeString(c *gin.Context) {
	schemaID := c.Param("schemaId")
	if schemaID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Schema ID is required"})
		return
	}

	entry, err := s.manager.GetSchema(schemaID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schema not found"})
		return
	}

	encodeType, err := entry.Registry.EncodeType(entry.PrimaryType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	typeHash, err := entry.Registry.TypeHash(entry.PrimaryType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, common.TypeStringResponse{
		SchemaID:    entry.SchemaID,
		PrimaryType: entry.PrimaryType,
		EncodeType:  encodeType,
		TypeHash:    typeHash.Hex(),
	})
}

// ComputeDigest hashes one message against a registered schema and
// broadcasts the resulting signable digest to the websocket feed.
func (s *APIServer) ComputeDigest(c *gin.Context) {
	schemaID := c.Param("schemaId")
	entry, err := s.manager.GetSchema(schemaID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schema not found"})
		return
	}

	body := c.Request.Body
	defer body.Close()

	req := common.DigestRequest{}
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid digest request"})
		s.logger.Printf("Failed to decode digest request: %v", err)
		return
	}

	domainSeparator, err := entry.Domain.Separator()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	messageHash, err := entry.Registry.HashStruct(entry.PrimaryType, req.Message)
	if err != nil {
		status := http.StatusBadRequest
		if !isInputError(err) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		s.logger.Printf("Error hashing message for schema %s: %v", schemaID, err)
		return
	}

	digest := eip712.SignableDigest(domainSeparator, messageHash)
	s.manager.HandleDigestEvent(entry.SchemaID, digest)

	s.logger.Printf("Digest %s computed for schema %s", digest.Hex(), schemaID)

	c.JSON(http.StatusOK, common.DigestResponse{
		SchemaID:        entry.SchemaID,
		PrimaryType:     entry.PrimaryType,
		DomainSeparator: domainSeparator.Hex(),
		MessageHash:     messageHash.Hex(),
		Digest:          digest.Hex(),
	})
}

// GetSignatures drains the signatures reported for a schema session since
// the last poll.
func (s *APIServer) GetSignatures(c *gin.Context) {
	schemaID := c.Param("schemaId")
	entry, err := s.manager.GetSchema(schemaID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schema not found"})
		return
	}

	// lock and borrow ref
	entry.SigMutex.Lock()
	signatures := entry.Signatures.Signatures

	// replace old ref with new
	entry.Signatures.Signatures = make([]common.SignatureRecord, 0, cap(signatures)/2)
	entry.SigMutex.Unlock()

	if len(signatures) == 0 {
		c.JSON(http.StatusOK, common.SignatureList{
			Signatures: []common.SignatureRecord{},
		})
		return
	}

	c.JSON(http.StatusOK, common.SignatureList{
		Signatures: signatures,
	})
}

// GetDomainSeparator computes a standalone domain separator from query
// parameters, useful for producing test vectors.
func (s *APIServer) GetDomainSeparator(c *gin.Context) {
	params := common.DomainParams{}
	if err := decoder.Decode(&params, c.Request.URL.Query()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid domain parameters"})
		return
	}

	domain := params.Domain()
	separator, err := domain.Separator()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"domainSeparator": separator.Hex()})
}

func (s *APIServer) DefaultHandler(c *gin.Context) {
	msg := c.Query("msg")
	if msg == "" {
		msg = "Hello, World!"
	}

	s.manager.Broadcast([]byte(msg))
	c.String(http.StatusOK, "Message broadcasted: %s", msg)
}

// isInputError reports whether err stems from the caller's schema or
// message rather than the service itself.
func isInputError(err error) bool {
	return errors.Is(err, eip712.ErrUnsupportedType) ||
		errors.Is(err, eip712.ErrRange) ||
		errors.Is(err, eip712.ErrArity) ||
		errors.Is(err, eip712.ErrSchemaMismatch) ||
		errors.Is(err, eip712.ErrCyclicType) ||
		errors.Is(err, eip712.ErrEmptyDomain)
}
