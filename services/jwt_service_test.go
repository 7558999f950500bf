package services

import "testing"

func TestJWTGenerateAndValidate(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatalf("令牌为空")
	}

	parsed, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !parsed.Valid {
		t.Errorf("令牌应有效")
	}

	claims, err := svc.ExtractClaims(token)
	if err != nil {
		t.Fatalf("ExtractClaims: %v", err)
	}
	if claims.UserID != 1 || claims.Username != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "lighttower-monitor-service" {
		t.Errorf("Issuer = %s", claims.Issuer)
	}
}

func TestJWTValidateTampered(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Errorf("改ざんされた令牌应验证失败")
	}
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Errorf("非法令牌应验证失败")
	}
}
