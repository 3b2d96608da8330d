package app

import (
	"fmt"

	leaksService "github.com/zkvault/zkvault/internal/leaks/service"
	leaksUseCase "github.com/zkvault/zkvault/internal/leaks/usecase"
)

// LeakUseCase returns the leak query aggregator.
// Email checks fan out to XposedOrNot and LeakCheck, password checks to Pwned Passwords.
func (c *Container) LeakUseCase() (leaksUseCase.LeakUseCase, error) {
	var err error
	c.leakUseCaseInit.Do(func() {
		c.leakUseCase, err = c.initLeakUseCase()
		if err != nil {
			c.initErrors["leakUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["leakUseCase"]; exists {
		return nil, storedErr
	}
	return c.leakUseCase, nil
}

func (c *Container) initLeakUseCase() (leaksUseCase.LeakUseCase, error) {
	emailProviders := []leaksUseCase.Provider{
		leaksService.NewXposedOrNot(c.config.XposedOrNotAPIURL, c.config.XposedOrNotTimeout),
		leaksService.NewLeakCheck(c.config.LeakCheckAPIURL, c.config.LeakCheckTimeout),
	}
	passwordProviders := []leaksUseCase.Provider{
		leaksService.NewPwnedPasswords(
			c.config.PwnedPasswordsAPIURL,
			c.config.PwnedPasswordsUserAgent,
			c.config.PwnedPasswordsTimeout,
		),
	}

	baseUseCase := leaksUseCase.NewLeakUseCase(emailProviders, passwordProviders, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for leak use case: %w", err)
		}
		return leaksUseCase.NewLeakUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
