package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义了管理员用户模型。
// 本地超级账号使用 Username + bcrypt 密码登录，Google 账号通过 OAuth 登录。
type User struct {
	Base
	Username  string  `gorm:"uniqueIndex;not null" json:"username"`
	Password  string  `json:"-"`
	Email     string  `gorm:"index" json:"email"`
	Name      string  `json:"name"`
	GoogleSub *string `gorm:"uniqueIndex" json:"-"`
	AvatarURL string  `json:"avatarUrl"`
}

// EnsureRootUser 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的超级账号。
func EnsureRootUser(username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return DB.Create(&User{Username: trimmedUser, Password: string(hashed)}).Error
	}

	return nil
}
